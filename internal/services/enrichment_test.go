package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow/internal/models"
)

func TestFormRules(t *testing.T) {
	tests := []struct {
		name string
		in   models.RMAData
		want FormState
	}{
		{"existing client", models.RMAData{IsExistingClient: models.Yes, AlreadyAllocatedToRMA: models.No}, FormState{ShowProducts: true, ContactRequired: true}},
		{"not a client", models.RMAData{IsExistingClient: models.No, AlreadyAllocatedToRMA: models.Yes}, FormState{ShowIncumbentName: true}},
		{"pending", models.RMAData{IsExistingClient: models.Pending}, FormState{ContactRequired: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormRules(tt.in))
		})
	}
}

func TestDefaultRMAData(t *testing.T) {
	d := DefaultRMAData()
	assert.Equal(t, models.Pending, d.IsExistingClient)
	assert.Equal(t, models.No, d.AlreadyAllocatedToRMA)
	assert.NotNil(t, d.Products)
	assert.Empty(t, d.Products)
	assert.False(t, d.ActiveTransfer)
}

func TestValidateEnrichment(t *testing.T) {
	full := models.RMAData{
		IsExistingClient: models.Yes,
		Products:         []string{models.ProductCOID},
		ContactName:      "Sarah Jenkins",
		ContactPhone:     "082 555 1234",
		ContactEmail:     "sarah.j@constructco.sa",
	}
	require.NoError(t, ValidateEnrichment(full))

	notClient := models.RMAData{IsExistingClient: models.No}
	assert.NoError(t, ValidateEnrichment(notClient))

	missingContact := full
	missingContact.ContactName = ""
	err := ValidateEnrichment(missingContact)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "contact_name")

	badEmail := full
	badEmail.ContactEmail = "not-an-email"
	assert.ErrorIs(t, ValidateEnrichment(badEmail), ErrValidation)

	badProduct := full
	badProduct.Products = []string{"Pet Insurance"}
	err = ValidateEnrichment(badProduct)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `"Pet Insurance"`)

	badChoice := full
	badChoice.IsExistingClient = "Maybe"
	assert.ErrorIs(t, ValidateEnrichment(badChoice), ErrValidation)
}

func TestNormalizeProducts(t *testing.T) {
	got := NormalizeProducts([]string{" COID", "Group Risk", "COID", "", "Funeral Cover"})
	assert.Equal(t, []string{"COID", "Funeral Cover", "Group Risk"}, got)
	assert.NotNil(t, NormalizeProducts(nil))
}
