package bag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xtp/internal/domain"
)

func TestBag_AddAndGet(t *testing.T) {
	b := New()
	b.AddString("DisplayName", "MyCase")
	b.AddInt("Timeout", 250)
	b.AddStrings("TraitNames", []string{"Category", "Owner"})

	name, err := Get[string](b, "Case", "DisplayName")
	require.NoError(t, err)
	assert.Equal(t, "MyCase", name)

	timeout, err := Get[int](b, "Case", "Timeout")
	require.NoError(t, err)
	assert.Equal(t, 250, timeout)

	names, err := Get[[]string](b, "Case", "TraitNames")
	require.NoError(t, err)
	assert.Equal(t, []string{"Category", "Owner"}, names)
}

func TestBag_MissingRequiredKey(t *testing.T) {
	b := New()

	_, err := Get[string](b, "Case", "DisplayName")

	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Case", missing.Type)
	assert.Equal(t, "DisplayName", missing.Key)
}

func TestBag_WrongKind(t *testing.T) {
	b := New()
	b.AddString("Timeout", "not-an-int")

	_, err := Get[int](b, "Case", "Timeout")
	require.Error(t, err)

	var missing *domain.MissingFieldError
	assert.NotErrorAs(t, err, &missing)
}

func TestBag_GetOptional(t *testing.T) {
	b := New()
	b.AddString("SkipReason", "flaky upstream")

	reason, ok := GetOptional[string](b, "SkipReason")
	assert.True(t, ok)
	assert.Equal(t, "flaky upstream", reason)

	_, ok = GetOptional[string](b, "SourceFile")
	assert.False(t, ok)
}

func TestBag_AbsenceIsNotEmptyString(t *testing.T) {
	b := New()
	b.AddString("SkipReason", "")

	assert.True(t, b.Has("SkipReason"))

	reason, ok := GetOptional[string](b, "SkipReason")
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestBag_KeysSorted(t *testing.T) {
	b := New()
	b.AddString("c", "3")
	b.AddString("a", "1")
	b.AddString("b", "2")

	assert.Equal(t, []string{"a", "b", "c"}, b.Keys())
}

func TestBag_AddStringsCopiesInput(t *testing.T) {
	values := []string{"one", "two"}
	b := New()
	b.AddStrings("TraitNames", values)

	values[0] = "mutated"

	got, err := Get[[]string](b, "Case", "TraitNames")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestBag_WireRoundTrip(t *testing.T) {
	b := New()
	b.AddString("DisplayName", "MyCase")
	b.AddString("SkipReason", "")
	b.AddInt("Timeout", 0)
	b.AddStrings("TraitNames", []string{"Category"})
	b.AddStrings("Trait:Category", []string{"Integration", "Slow"})

	data, err := b.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, b.Keys(), decoded.Keys())

	name, err := Get[string](decoded, "Case", "DisplayName")
	require.NoError(t, err)
	assert.Equal(t, "MyCase", name)

	timeout, err := Get[int](decoded, "Case", "Timeout")
	require.NoError(t, err)
	assert.Zero(t, timeout)

	values, err := Get[[]string](decoded, "Case", "Trait:Category")
	require.NoError(t, err)
	assert.Equal(t, []string{"Integration", "Slow"}, values)

	// Absent keys stay absent after the round trip.
	assert.False(t, decoded.Has("SourceFile"))
}

func TestDecode_RejectsUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"x":{"kind":"??"}}`))
	assert.Error(t, err)
}

func TestDecode_RejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{`))
	assert.Error(t, err)
}
