package hr

// Profile describes the column layout of an HR roster export.
// Adding a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	OwnerCol   string
	NameCol    string
	SectorCol  string
	CompanyCol string
	// PINCol is optional; rosters without it onboard employees with no
	// kiosk PIN enrolled.
	PINCol string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.OwnerCol, p.NameCol, p.SectorCol, p.CompanyCol}
}

// profiles is the ordered list of roster layouts to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "diretório",
		OwnerCol:   "ID Colaborador",
		NameCol:    "Nome Completo",
		SectorCol:  "Departamento",
		CompanyCol: "Empresa",
		PINCol:     "PIN",
	},
	{
		Name:       "planilha",
		OwnerCol:   "Matrícula",
		NameCol:    "Nome",
		SectorCol:  "Setor",
		CompanyCol: "Empresa",
		PINCol:     "PIN",
	},
}
