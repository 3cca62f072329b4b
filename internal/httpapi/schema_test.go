package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidator_Defaults(t *testing.T) {
	v, err := newInputValidator()
	require.NoError(t, err)

	in, err := v.decode([]byte(`{"title":"Buy milk"}`))
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", in.Title)
	assert.Nil(t, in.Description)
	assert.False(t, in.Completed)
}

func TestInputValidator_NullDescription(t *testing.T) {
	v, err := newInputValidator()
	require.NoError(t, err)

	in, err := v.decode([]byte(`{"title":"x","description":null,"completed":true}`))
	require.NoError(t, err)
	assert.Nil(t, in.Description)
	assert.True(t, in.Completed)
}

func TestInputValidator_ReportsEveryField(t *testing.T) {
	v, err := newInputValidator()
	require.NoError(t, err)

	_, err = v.decode([]byte(`{"completed":"no","description":1}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	locs := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		locs = append(locs, f.Loc[len(f.Loc)-1])
	}
	assert.ElementsMatch(t, []string{"title", "completed", "description"}, locs)
	assert.Contains(t, verr.Error(), "body.title")
}

func TestPointerSegments(t *testing.T) {
	assert.Nil(t, pointerSegments(""))
	assert.Equal(t, []string{"title"}, pointerSegments("/title"))
	assert.Equal(t, []string{"a/b", "c~d"}, pointerSegments("/a~1b/c~0d"))
}
