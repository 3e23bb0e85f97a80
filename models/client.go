package models

import "juris_control_go/services/tablestore"

// Client column names
const (
	ClientColID      = "id"
	ClientColName    = "name"
	ClientColTaxID   = "tax_id"
	ClientColEmail   = "email"
	ClientColPhone   = "phone"
	ClientColAddress = "address"
)

// ClientColumns is the header order of the clients table.
var ClientColumns = []string{
	ClientColID,
	ClientColName,
	ClientColTaxID,
	ClientColEmail,
	ClientColPhone,
	ClientColAddress,
}

// Client is a person or company represented by the practice.
type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ClientFromRow decodes a clients row. A missing id decodes as 0.
func ClientFromRow(r tablestore.Row) Client {
	id, _ := ParseID(r.Get(ClientColID))
	return Client{
		ID:      id,
		Name:    r.Get(ClientColName),
		TaxID:   r.Get(ClientColTaxID),
		Email:   r.Get(ClientColEmail),
		Phone:   r.Get(ClientColPhone),
		Address: r.Get(ClientColAddress),
	}
}

// ToRow encodes the client for the clients table.
func (c Client) ToRow() tablestore.Row {
	return tablestore.Row{
		ClientColID:      FormatID(c.ID),
		ClientColName:    c.Name,
		ClientColTaxID:   c.TaxID,
		ClientColEmail:   c.Email,
		ClientColPhone:   c.Phone,
		ClientColAddress: c.Address,
	}
}
