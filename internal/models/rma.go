package models

type TriState string

const (
	Yes     TriState = "Yes"
	No      TriState = "No"
	Pending TriState = "Pending"
)

// RMA products offered on the enrichment form.
const (
	ProductFuneralCover = "Funeral Cover"
	ProductAugmentation = "Augmentation +"
	ProductGroupRisk    = "Group Risk"
	ProductCOID         = "COID"
)

var RMAProducts = []string{ProductFuneralCover, ProductAugmentation, ProductGroupRisk, ProductCOID}

// RMAData is filled in by the RMA during verification.
type RMAData struct {
	IsExistingClient      TriState `json:"is_existing_client" validate:"required,oneof=Yes No Pending"`
	Products              []string `json:"products"`
	ActiveTransfer        bool     `json:"active_transfer"`
	AlreadyAllocatedToRMA TriState `json:"already_allocated_to_rma,omitempty" validate:"omitempty,oneof=Yes No"`
	RMAIncumbentName      string   `json:"rma_incumbent_name,omitempty"`
	ContactName           string   `json:"contact_name" validate:"required_unless=IsExistingClient No"`
	ContactPhone          string   `json:"contact_phone" validate:"required_unless=IsExistingClient No"`
	ContactEmail          string   `json:"contact_email" validate:"required_unless=IsExistingClient No"`
}

func (d *RMAData) Clone() *RMAData {
	if d == nil {
		return nil
	}
	out := *d
	if d.Products != nil {
		out.Products = append([]string(nil), d.Products...)
	}
	return &out
}
