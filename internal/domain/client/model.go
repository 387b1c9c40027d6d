package client

// Client is an agency customer.
type Client struct {
	ID             int64  `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Sector         string `json:"sector,omitempty" yaml:"sector"`
	Contact        string `json:"contact,omitempty" yaml:"contact"`
	Email          string `json:"email,omitempty" yaml:"email"`
	Phone          string `json:"phone,omitempty" yaml:"phone"`
	TaxID          string `json:"tax_id,omitempty" yaml:"tax_id"`
	Address        string `json:"address,omitempty" yaml:"address"`
	Notes          string `json:"notes,omitempty" yaml:"notes"`
	Contract       string `json:"contract,omitempty" yaml:"contract"`
	ContractExpiry string `json:"contract_expiry,omitempty" yaml:"contract_expiry"`
	Active         bool   `json:"active" yaml:"active"`
}

// ListFilter narrows List results. Zero value lists everything.
type ListFilter struct {
	Search string
	Active *bool
}
