package model

// IndexObservation is one value of a central bank time series.
// Date is dd/mm/yyyy and Value a decimal string, both as published.
type IndexObservation struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// IndexSeries is a full series as returned by the indices endpoint.
type IndexSeries struct {
	Index string             `json:"index"`
	Data  []IndexObservation `json:"data"`
}

// IndexYear is the compounded change of an index over one calendar year.
type IndexYear struct {
	Year    string  `json:"year"`
	Percent float64 `json:"percent"`
}

// IndexOverview is the latest annualized level of an index.
type IndexOverview struct {
	Index       string  `json:"index"`
	Periodicity string  `json:"periodicity"`
	LastDate    string  `json:"last_date"`
	LastValue   float64 `json:"last_value"`
	Annualized  float64 `json:"annualized"`
	Display     string  `json:"display"`
}
