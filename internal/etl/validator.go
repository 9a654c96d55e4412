package etl

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/BartekS5/barberia/pkg/models"
	"github.com/BartekS5/barberia/pkg/utils"
)

// Validator applies the per-table inclusion policy to legacy rows.
type Validator struct {
	cashCustomer string
	fold         cases.Caser
}

// NewValidator builds a policy exempting cashCustomer (the walk-in
// placeholder client) from the identity document requirement.
func NewValidator(cashCustomer string) *Validator {
	v := &Validator{fold: cases.Fold()}
	v.cashCustomer = v.normalizeName(cashCustomer)
	return v
}

// Check returns a *MissingFieldError when row must not be migrated.
func (v *Validator) Check(m models.TableMapping, row models.Row) error {
	missing := func(field string) error {
		return &MissingFieldError{Table: m.SourceTable, Field: field}
	}

	switch m.Entity {
	case models.EntityClient:
		if utils.IsAbsentDocument(utils.ToString(row["cedula"])) && !v.IsCashCustomer(row) {
			return missing("cedula")
		}
		if utils.IsBlank(row["nombres"]) {
			return missing("nombres")
		}
	case models.EntityEmployee:
		if utils.IsBlank(row["nombres"]) {
			return missing("nombres")
		}
	case models.EntityProduct, models.EntityService:
		if utils.IsBlank(row["nombre"]) {
			return missing("nombre")
		}
	case models.EntityExchangeRate:
		if utils.IsBlank(row["fecha_creacion"]) {
			return missing("fecha_creacion")
		}
		if utils.IsBlank(row["tasa"]) {
			return missing("tasa")
		}
	}
	return nil
}

// IsCashCustomer reports whether the row's full name is the cash-customer
// sentinel, ignoring case and surrounding or repeated whitespace.
func (v *Validator) IsCashCustomer(row models.Row) bool {
	full := utils.ToString(row["nombres"]) + " " + utils.ToString(row["apellidos"])
	return v.normalizeName(full) == v.cashCustomer
}

func (v *Validator) normalizeName(s string) string {
	return v.fold.String(strings.Join(strings.Fields(s), " "))
}
