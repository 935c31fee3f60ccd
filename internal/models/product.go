package models

type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	m, err := decodeObject(data)
	if err != nil {
		return err
	}
	p.ID, _ = idField(m)
	p.Name, _ = strField(m, "name", "Name")
	p.Description, _ = strField(m, "description", "Description")
	p.Price, _ = numField(m, "price", "Price")
	p.CategoryID, _ = intField(m, "categoryId", "CategoryId", "CategoryID")
	p.CategoryName, _ = strField(m, "categoryName", "CategoryName")
	p.ImageURL, _ = strField(m, "imageUrl", "ImageUrl", "imageURL", "ImageURL")
	return nil
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	m, err := decodeObject(data)
	if err != nil {
		return err
	}
	c.ID, _ = idField(m)
	c.Name, _ = strField(m, "name", "Name")
	c.Description, _ = strField(m, "description", "Description")
	return nil
}
