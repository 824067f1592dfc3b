package asset

import (
	"errors"

	"carteira/internal/domain/user"
)

// Investment types
const (
	TypeAcao      = "acao"
	TypeFundo     = "fundo"
	TypeRendaFixa = "rendaFixa"
	TypeCripto    = "cripto"
)

// Domain errors
var (
	ErrInvalidType    = errors.New("invalid asset type")
	ErrTypeNotAllowed = errors.New("asset type not allowed for risk profile")
	ErrQuoteNotFound  = errors.New("quote not found")
)

// profileTypes maps each risk profile to the asset types it may browse and buy.
var profileTypes = map[string][]string{
	user.ProfileConservador: {TypeRendaFixa},
	user.ProfileModerado:    {TypeRendaFixa, TypeFundo, TypeAcao},
	user.ProfileArrojado:    {TypeRendaFixa, TypeFundo, TypeAcao, TypeCripto},
}

// Asset represents a tradable asset sourced from an external provider
type Asset struct {
	Ticker   string  `json:"ticker"`
	Nome     string  `json:"nome"`
	Preco    float64 `json:"preco"`
	Variacao float64 `json:"variacao,omitempty"`
	Tipo     string  `json:"tipo"`
	Logo     string  `json:"logo,omitempty"`
}

// Listing is one page of assets plus provider-side pagination data
type Listing struct {
	Assets     []Asset `json:"assets"`
	TotalPages int     `json:"totalPages"`
	TotalCount int     `json:"totalCount"`
}

// IsValidType checks if the provided investment type is valid.
func IsValidType(t string) bool {
	switch t {
	case TypeAcao, TypeFundo, TypeRendaFixa, TypeCripto:
		return true
	}
	return false
}

// AllowedTypes returns the asset types a risk profile may access.
// Unknown profiles get the conservative set.
func AllowedTypes(profile string) []string {
	if types, ok := profileTypes[profile]; ok {
		return types
	}
	return profileTypes[user.ProfileConservador]
}

// IsTypeAllowed checks whether a risk profile may access an asset type.
func IsTypeAllowed(profile, assetType string) bool {
	for _, t := range AllowedTypes(profile) {
		if t == assetType {
			return true
		}
	}
	return false
}
