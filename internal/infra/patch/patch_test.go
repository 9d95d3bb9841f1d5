package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Name    Field[string] `json:"name"`
	Contact Field[string] `json:"contact"`
	Count   Field[int]    `json:"count"`
}

func TestFieldPresence(t *testing.T) {
	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme","contact":null}`), &b))

	assert.Equal(t, Field[string]{Set: true, Value: "Acme"}, b.Name)
	assert.Equal(t, Field[string]{Set: true, Null: true}, b.Contact)
	assert.False(t, b.Count.Set)
}

func TestFieldTypeMismatch(t *testing.T) {
	var b body
	assert.Error(t, json.Unmarshal([]byte(`{"count":"three"}`), &b))
}

func TestApply(t *testing.T) {
	name := "old"
	Field[string]{}.Apply(&name)
	assert.Equal(t, "old", name)

	Value("new").Apply(&name)
	assert.Equal(t, "new", name)

	Clear[string]().Apply(&name)
	assert.Equal(t, "new", name)
}

func TestApplyNullable(t *testing.T) {
	old := "phone"
	contact := &old

	Field[string]{}.ApplyNullable(&contact)
	require.NotNil(t, contact)
	assert.Equal(t, "phone", *contact)

	Value("email").ApplyNullable(&contact)
	require.NotNil(t, contact)
	assert.Equal(t, "email", *contact)

	Clear[string]().ApplyNullable(&contact)
	assert.Nil(t, contact)
}
