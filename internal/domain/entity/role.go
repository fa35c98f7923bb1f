package entity

import (
	"strconv"
	"strings"
)

// Roles conocidos de la cadena de suministro. El campo User.Role es texto libre;
// estos son los valores que tienen prefijo propio.
const (
	RoleFarmer             = "Farmer"
	RoleResourceProvider   = "Resource Provider"
	RoleRetailer           = "Retailer"
	RoleWholesaler         = "Wholesaler"
	RoleDealer             = "Dealer"
	RoleAgricultureExpert  = "Agriculture Expert"
	RoleGovernmentAgencies = "Government Agencies"
	RoleNGOs               = "NGOs"
	RoleAdmin              = "Admin"
)

// DefaultRolePrefix prefijo para roles fuera de la tabla.
const DefaultRolePrefix = "u"

var rolePrefixes = map[string]string{
	RoleFarmer:             "f",
	RoleResourceProvider:   "rp",
	RoleRetailer:           "r",
	RoleWholesaler:         "w",
	RoleDealer:             "d",
	RoleAgricultureExpert:  "ae",
	RoleGovernmentAgencies: "ga",
	RoleNGOs:               "ngo",
	RoleAdmin:              "admin",
}

// RolePrefix devuelve el prefijo del RoleID para un rol ("w" para Wholesaler, "u" si no está en la tabla).
func RolePrefix(role string) string {
	if p, ok := rolePrefixes[role]; ok {
		return p
	}
	return DefaultRolePrefix
}

// RoleID identificador secuencial legible por rol: {prefijo}{n}, ej. "w3" = tercer mayorista.
// Se usa también como referencia entre entidades (wholesalerId, dealerId, retailerId).
type RoleID string

// NewRoleID construye el identificador {prefix}{n}.
func NewRoleID(prefix string, n int64) RoleID {
	return RoleID(prefix + strconv.FormatInt(n, 10))
}

// String implementa fmt.Stringer.
func (id RoleID) String() string { return string(id) }

// IsZero indica que el usuario aún no tiene RoleID asignado.
func (id RoleID) IsZero() bool { return id == "" }

// Number extrae la parte numérica tras el prefijo. Un prefijo distinto o un sufijo
// no numérico cuentan como 0.
func (id RoleID) Number(prefix string) int64 {
	s := string(id)
	if !strings.HasPrefix(s, prefix) {
		return 0
	}
	n, err := strconv.ParseInt(s[len(prefix):], 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// MaxRoleNumber devuelve el mayor número asignado entre ids con el prefijo dado (0 si no hay).
func MaxRoleNumber(prefix string, ids []RoleID) int64 {
	var max int64
	for _, id := range ids {
		if n := id.Number(prefix); n > max {
			max = n
		}
	}
	return max
}
