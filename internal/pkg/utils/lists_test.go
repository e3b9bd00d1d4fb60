package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListToJSON(t *testing.T) {
	assert.Equal(t, "", ListToJSON(nil))
	assert.Equal(t, `["monthly","payroll"]`, ListToJSON([]string{"monthly", "payroll"}))
}

func TestJSONToList(t *testing.T) {
	assert.Equal(t, []string{}, JSONToList(""))
	assert.Equal(t, []string{}, JSONToList("null"))
	assert.Equal(t, []string{}, JSONToList("[]"))
	assert.Equal(t, []string{"a", "b"}, JSONToList(`["a","b"]`))
	assert.Equal(t, []string{}, JSONToList("a,b"))
}
