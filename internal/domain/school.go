package domain

// SchoolMetrics resume los datos públicos de una escuela objetivo.
type SchoolMetrics struct {
	SchoolID       string  `json:"school_id"`
	Name           string  `json:"name"`
	AcceptanceRate float64 `json:"acceptance_rate"` // fracción 0-1; <=0 significa desconocida
	Rank           int     `json:"rank"`            // estilo US News; 0 significa sin ranking
}

// HistoricalDistribution describe a los admitidos históricos de una escuela,
// como valores crudos cuando hay casos cargados o como estadística resumida
// cuando solo existe el agregado.
type HistoricalDistribution struct {
	SampleSize int `json:"sample_size"`

	// Valores crudos de admitidos (pueden estar vacíos aunque haya resumen).
	GPAValues  []float64 `json:"gpa_values,omitempty"`  // GPA en escala 4.0
	TestValues []float64 `json:"test_values,omitempty"` // SAT-equivalente

	// Resumen paramétrico.
	GPAMean     float64 `json:"gpa_mean"`
	GPAStdDev   float64 `json:"gpa_std_dev"`
	TestMean    float64 `json:"test_mean"`
	TestStdDev  float64 `json:"test_std_dev"`
	ScoreMean   float64 `json:"score_mean"`    // score compuesto de admitidos
	ScoreStdDev float64 `json:"score_std_dev"` //
}

// Reliable indica si la muestra alcanza el mínimo para tratar la
// distribución como evidencia y no como anécdota.
func (d *HistoricalDistribution) Reliable(minSample int) bool {
	return d != nil && d.SampleSize >= minSample
}
