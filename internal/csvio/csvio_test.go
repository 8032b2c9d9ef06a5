package csvio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceadmin/internal/csvio"
)

func TestReadValidRows(t *testing.T) {
	input := strings.Join([]string{
		"UPN,DisplayName",
		"aa-reception@contoso.com,Reception",
		"cq-support@contoso.com,Support Queue",
	}, "\n")

	rows, rowErrors, err := csvio.Read(strings.NewReader(input))

	require.Nil(t, err)
	assert.Empty(t, rowErrors)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "aa-reception@contoso.com", rows[0].UPN)
	assert.Equal(t, "Support Queue", rows[1].DisplayName)
}

func TestReadToleratesExtraColumns(t *testing.T) {
	input := strings.Join([]string{
		"Department,UPN,DisplayName",
		"Support,cq-support@contoso.com,Support Queue",
	}, "\n")

	rows, rowErrors, err := csvio.Read(strings.NewReader(input))

	require.Nil(t, err)
	assert.Empty(t, rowErrors)
	assert.Len(t, rows, 1)
	assert.Equal(t, "cq-support@contoso.com", rows[0].UPN)
}

func TestReadSkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"UPN,DisplayName",
		",Reception",
		"aa-sales@contoso.com,",
		"no-at-sign,Bad UPN",
		"aa-ok@contoso.com,Fine",
	}, "\n")

	rows, rowErrors, err := csvio.Read(strings.NewReader(input))

	require.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "aa-ok@contoso.com", rows[0].UPN)

	require.Len(t, rowErrors, 3)
	assert.ErrorIs(t, rowErrors[0], csvio.ErrMissingField)
	assert.Equal(t, 2, rowErrors[0].Line)
	assert.ErrorIs(t, rowErrors[1], csvio.ErrMissingField)
	assert.ErrorIs(t, rowErrors[2], csvio.ErrMalformedUPN)
	assert.Equal(t, 4, rowErrors[2].Line)
}

func TestReadRejectsMissingColumns(t *testing.T) {
	_, _, err := csvio.Read(strings.NewReader("UPN,Name\nx@y.com,X"))
	assert.ErrorIs(t, err, csvio.ErrMissingColumn)

	_, _, err = csvio.Read(strings.NewReader("Upn,DisplayName\nx@y.com,X"))
	assert.ErrorIs(t, err, csvio.ErrMissingColumn)

	_, _, err = csvio.Read(strings.NewReader(""))
	assert.ErrorIs(t, err, csvio.ErrMissingColumn)
}
