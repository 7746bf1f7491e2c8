// Package simulator computes investment projections for the public
// simulator endpoint.  Returns compound quarterly: the projection is a
// closed-form formula evaluated per year, with no state.
package simulator

import "math"

// Currencies accepted by the simulator.
const (
	CurrencyCOP = "COP"
	CurrencyUSD = "USD"
)

// MinPrincipal is the minimum accepted investment (100k COP or the
// equivalent entered in USD).
const MinPrincipal = 100_000

// Input are the simulation parameters as submitted by the form.
type Input struct {
	Principal  float64 `json:"principal"`
	Years      int     `json:"years"`
	AnnualRate float64 `json:"annualRate"`
	Currency   string  `json:"currency"`
}

// YearPoint is one row of the yearly breakdown.
type YearPoint struct {
	Year   int   `json:"year"`
	Value  int64 `json:"value"`
	Profit int64 `json:"profit"`
}

// Projection is the full simulation result.
type Projection struct {
	Principal       float64     `json:"principal"`
	TotalReturn     int64       `json:"totalReturn"`
	TotalProfit     int64       `json:"totalProfit"`
	AnnualRate      float64     `json:"annualRate"`
	Years           int         `json:"years"`
	Currency        string      `json:"currency"`
	QuarterlyIncome int64       `json:"quarterlyIncome"`
	YearlyData      []YearPoint `json:"yearlyData"`
}

// Validate checks the simulation parameters and returns a user-facing
// message for the first violation, or an empty string when the input
// is acceptable.
func Validate(in Input) string {
	switch {
	case in.Principal <= 0:
		return "El monto de inversión debe ser un número mayor a 0"
	case in.Principal < MinPrincipal:
		return "El monto mínimo de inversión es $100,000 COP"
	case in.Years <= 0 || in.Years > 30:
		return "Los años deben estar entre 1 y 30"
	case in.AnnualRate <= 0 || in.AnnualRate > 50:
		return "La tasa de rentabilidad debe estar entre 1% y 50%"
	case in.Currency != CurrencyCOP && in.Currency != CurrencyUSD:
		return "La moneda debe ser COP o USD"
	}
	return ""
}

// Project evaluates A = P(1 + r/4)^(4t) with quarterly compounding and
// builds the yearly breakdown.  Monetary outputs are rounded to whole
// units; the quarterly income is the total profit spread evenly over
// every quarter of the term.
func Project(in Input) Projection {
	quarterlyRate := in.AnnualRate / 100 / 4
	periods := float64(in.Years * 4)

	finalAmount := in.Principal * math.Pow(1+quarterlyRate, periods)

	yearly := make([]YearPoint, 0, in.Years)
	for year := 1; year <= in.Years; year++ {
		value := in.Principal * math.Pow(1+quarterlyRate, float64(year*4))
		yearly = append(yearly, YearPoint{
			Year:   year,
			Value:  int64(math.Round(value)),
			Profit: int64(math.Round(value - in.Principal)),
		})
	}

	return Projection{
		Principal:       in.Principal,
		TotalReturn:     int64(math.Round(finalAmount)),
		TotalProfit:     int64(math.Round(finalAmount - in.Principal)),
		AnnualRate:      in.AnnualRate,
		Years:           in.Years,
		Currency:        in.Currency,
		QuarterlyIncome: int64(math.Round((finalAmount - in.Principal) / periods)),
		YearlyData:      yearly,
	}
}
