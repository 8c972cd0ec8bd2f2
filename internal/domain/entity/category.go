package entity

// Category representa una categoría de artículos. El ID lo define el cliente (ej. "cat-bebidas").
type Category struct {
	ID         string
	Name       string
	Department string // opcional
	Tax        string // opcional
}
