package schemas

import (
	"github.com/go-gota/gota/dataframe"
)

// PortfolioData is the in-memory handle over the loaded datasets. The
// presentation layer reads it but never writes back; once loaded it is
// held immutably for the session and served from cache.
type PortfolioData struct {
	Funds     *dataframe.DataFrame
	Covenants *dataframe.DataFrame
	Macro     *dataframe.DataFrame
}

// HasCovenants reports whether the optional covenant dataset was loaded.
func (p *PortfolioData) HasCovenants() bool {
	return p != nil && p.Covenants != nil
}

// HasMacro reports whether the optional macro dataset was loaded.
func (p *PortfolioData) HasMacro() bool {
	return p != nil && p.Macro != nil
}
