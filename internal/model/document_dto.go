package model

import "github.com/ridwanfathin/invoice-document-service/internal/domain"

// ImagesByCategoryDTO lists image URLs per upload category
type ImagesByCategoryDTO struct {
	Conferencia []string `json:"conferencia"`
	Carga       []string `json:"carga"`
	Canhoto     []string `json:"canhoto"`
}

// DocumentDTO is one row of the document listing
type DocumentDTO struct {
	DocumentoFormatado  string              `json:"documentoFormatado"`
	DataFormatada       string              `json:"dataFormatada"` // Format: YYYY-MM-DD
	Cliente             string              `json:"cliente"`
	ImagensPorCategoria ImagesByCategoryDTO `json:"imagensPorCategoria"`
}

// DocumentFromDomain converts an invoice record into its response shape
func DocumentFromDomain(record domain.InvoiceRecord) DocumentDTO {
	images := record.Images.Clone()
	return DocumentDTO{
		DocumentoFormatado: record.Key.String(),
		DataFormatada:      record.IssueDate,
		Cliente:            record.CustomerName,
		ImagensPorCategoria: ImagesByCategoryDTO{
			Conferencia: images[domain.CategoryConferencia],
			Carga:       images[domain.CategoryCarga],
			Canhoto:     images[domain.CategoryCanhoto],
		},
	}
}

// DocumentsFromDomain converts a listing, never returning nil
func DocumentsFromDomain(records []domain.InvoiceRecord) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(records))
	for _, record := range records {
		out = append(out, DocumentFromDomain(record))
	}
	return out
}
