package directory

// User is the subset of directory attributes the import workflows need.
type User struct {
	ID          string `json:"id"`
	UPN         string `json:"userPrincipalName"`
	DisplayName string `json:"displayName"`
	GivenName   string `json:"givenName"`
	Surname     string `json:"surname"`
	Phone       string `json:"mobilePhone"`
	JobTitle    string `json:"jobTitle"`
	Office      string `json:"officeLocation"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type openIDConfiguration struct {
	Issuer string `json:"issuer"`
}
