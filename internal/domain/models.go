package domain

import "encoding/json"

type Category int

const (
	CategoryAgriculture Category = 1
	CategoryHealthcare  Category = 2
	CategoryEnergy      Category = 3
)

func (c Category) Label() string {
	switch c {
	case CategoryAgriculture:
		return "Agriculture"
	case CategoryHealthcare:
		return "Healthcare"
	case CategoryEnergy:
		return "Energy"
	}
	return "Uncategorized"
}

type Product struct {
	ID           int64    `db:"product_id"`
	Name         string   `db:"product_name"`
	Description  string   `db:"product_description"`
	PicturesJSON string   `db:"product_pictures"` // JSON array of image paths
	Category     Category `db:"category"`
	Status       Status   `db:"status"`
	OwnerID      int64    `db:"user_id"`
	CreatedAt    string   `db:"created_at"`
}

// Pictures decodes the stored image list. Malformed JSON yields no pictures.
func (p Product) Pictures() []string {
	var out []string
	if p.PicturesJSON == "" {
		return out
	}
	if err := json.Unmarshal([]byte(p.PicturesJSON), &out); err != nil {
		return nil
	}
	return out
}

// PendingProduct is a row of the approval queue on the dashboard.
type PendingProduct struct {
	Product
	OwnerCodeName string `db:"code_name"`
}

type Company struct {
	ID            int64  `db:"id"`
	Name          string `db:"company"`
	Address       string `db:"address"`
	EmailAddress  string `db:"email_address"`
	ContactNumber string `db:"contact_number"`
}
