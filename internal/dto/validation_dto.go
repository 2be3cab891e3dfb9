package dto

// ValidationResponse is the generation verdict for a case. The names match
// the client contract: puede_generar / bloqueantes_faltantes / advertencias.
type ValidationResponse struct {
	CanGenerate           bool     `json:"puede_generar"`
	BlockingMissingFields []string `json:"bloqueantes_faltantes"`
	Warnings              []string `json:"advertencias"`
}
