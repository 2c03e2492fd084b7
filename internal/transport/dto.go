package transport

// CreateProductRequest uses pointer fields so handlers can tell an
// absent key apart from a zero value: an empty name is a valid product,
// a missing name key is not.
type CreateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

// PatchProductRequest carries a partial update: nil means the field was
// omitted and stays unchanged.
type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

func (p PatchProductRequest) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
