package reservation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVenue(t *testing.T) {
	v, err := DecodeVenue(json.RawMessage(`{"id":{"resy":834,"google":"x"},"name":"Abc Bistro","url_slug":"abc-bistro"}`))
	require.NoError(t, err)
	assert.Equal(t, Venue{ID: 834, Name: "Abc Bistro", URLSlug: "abc-bistro"}, v)
}

func TestDecodeVenue_SchemaMismatch(t *testing.T) {
	for name, raw := range map[string]string{
		"missing id":    `{"name":"Abc"}`,
		"id wrong type": `{"id":{"resy":"834"}}`,
		"array":         `[1,2,3]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeVenue(json.RawMessage(raw))
			assert.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}
}

func TestDecodeSlots(t *testing.T) {
	raw := json.RawMessage(`{"results":{"venues":[{"slots":[
		{"date":{"start":"2024-01-01 18:30:00","end":"2024-01-01 20:00:00"},"config":{"type":"Dining Room","token":"rgs://a"}},
		{"date":{"start":"2024-01-01 19:00:00"},"config":{"type":"Bar","token":"rgs://b"}}
	]}]}}`)
	slots, err := DecodeSlots(raw)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, Slot{Start: "2024-01-01 18:30:00", End: "2024-01-01 20:00:00", Type: "Dining Room", ConfigToken: "rgs://a"}, slots[0])
	assert.Equal(t, "19:00:00", slots[1].StartTime())
}

func TestDecodeSlots_NoVenuesIsEmpty(t *testing.T) {
	slots, err := DecodeSlots(json.RawMessage(`{"results":{"venues":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDecodeSlots_SchemaMismatch(t *testing.T) {
	_, err := DecodeSlots(json.RawMessage(`{"results":{"venues":{"slots":1}}}`))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestDecodeDetails(t *testing.T) {
	d, err := DecodeDetails(json.RawMessage(`{"book_token":{"value":"bt-1","date_expires":"2024-01-01 19:05:00"},"user":{"payment_methods":[{"id":99,"is_default":true}]}}`))
	require.NoError(t, err)
	assert.Equal(t, "bt-1", d.BookToken)
	assert.Equal(t, "2024-01-01 19:05:00", d.BookTokenExpires)
	require.Len(t, d.PaymentMethods, 1)
	assert.Equal(t, int64(99), d.PaymentMethods[0].ID)

	dry, err := DecodeDetails(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Empty(t, dry.BookToken)
}

func TestDecodeBooking(t *testing.T) {
	b, err := DecodeBooking(json.RawMessage(`{"resy_token":"rt","reservation_id":123}`))
	require.NoError(t, err)
	assert.Equal(t, Booking{ResyToken: "rt", ReservationID: 123}, b)

	_, err = DecodeBooking(json.RawMessage(`{"reservation_id":123}`))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestDecodeUser_DefaultPaymentMethod(t *testing.T) {
	u, err := DecodeUser(json.RawMessage(`{"id":1,"first_name":"Sam","em_address":"s@example.com","payment_methods":[{"id":5},{"id":6,"is_default":true}]}`))
	require.NoError(t, err)
	assert.Equal(t, "s@example.com", u.Email)

	pm, ok := u.DefaultPaymentMethod()
	require.True(t, ok)
	assert.Equal(t, int64(6), pm.ID)

	pm, ok = User{PaymentMethods: []PaymentMethod{{ID: 5}}}.DefaultPaymentMethod()
	require.True(t, ok)
	assert.Equal(t, int64(5), pm.ID)

	_, ok = User{}.DefaultPaymentMethod()
	assert.False(t, ok)

	_, err = DecodeUser(json.RawMessage(`{"id":"one"}`))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestDetails_DefaultPaymentMethod(t *testing.T) {
	d, err := DecodeDetails(json.RawMessage(`{"book_token":{"value":"bt"},"user":{"payment_methods":[{"id":3},{"id":4,"is_default":true}]}}`))
	require.NoError(t, err)
	pm, ok := d.DefaultPaymentMethod()
	require.True(t, ok)
	assert.EqualValues(t, 4, pm.ID)

	_, ok = Details{}.DefaultPaymentMethod()
	assert.False(t, ok)
}
