package dto

type GenerateDocumentResponse struct {
	Case CaseResponse `json:"caso"`
}

type StrengthReportResponse struct {
	Score       float64  `json:"puntaje"`
	Summary     string   `json:"resumen"`
	Weaknesses  []string `json:"debilidades"`
	Suggestions []string `json:"sugerencias"`
}

type JurisprudenceCitationResponse struct {
	Reference  string  `json:"referencia"`
	Excerpt    string  `json:"extracto"`
	Similarity float64 `json:"similitud"`
}
