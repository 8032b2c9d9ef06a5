package datagovau

// Record is one row of the Australian public holidays dataset as returned
// by the CKAN datastore. Dates are published as yyyyMMdd strings.
type Record struct {
	ID           int    `json:"_id"`
	Date         string `json:"Date"`
	HolidayName  string `json:"Holiday Name"`
	Information  string `json:"Information"`
	Jurisdiction string `json:"Jurisdiction"`
}

type sqlResponse struct {
	Success bool      `json:"success"`
	Result  sqlResult `json:"result"`
}

type sqlResult struct {
	Records []Record `json:"records"`
}
