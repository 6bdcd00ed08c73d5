package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutOrder_FieldCoversEveryName(t *testing.T) {
	var o CheckoutOrder
	for _, name := range FieldNames {
		p := o.Field(name)
		require.NotNil(t, p, name)
		*p = "v-" + name
	}
	for _, name := range FieldNames {
		v, ok := o.Get(name)
		assert.True(t, ok)
		assert.Equal(t, "v-"+name, v)
	}
	assert.Nil(t, o.Field("merchant_secret"))
}

func TestCheckoutOrder_FormValues(t *testing.T) {
	o := CheckoutOrder{MerchantID: "1221149", Amount: "2000", Hash: "abc123"}
	vals := o.FormValues()

	assert.Len(t, vals, len(FieldNames))
	assert.Equal(t, "1221149", vals.Get(FieldMerchantID))
	assert.Equal(t, "2000", vals.Get(FieldAmount))
	assert.Equal(t, "abc123", vals.Get(FieldHash))

	fields := o.FormFields()
	require.Len(t, fields, len(FieldNames))
	assert.Equal(t, FieldMerchantID, fields[0].Name)
	assert.Equal(t, FieldHash, fields[len(fields)-1].Name)
}
