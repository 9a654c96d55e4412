package etl

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BartekS5/barberia/pkg/models"
	"github.com/BartekS5/barberia/pkg/utils"
)

// Transformer maps legacy rows to target records.
type Transformer struct {
	BirthDatePlaceholder string
	// Now supplies the fallback for unparseable timestamps.
	Now func() time.Time
}

func NewTransformer(birthDatePlaceholder string) *Transformer {
	return &Transformer{BirthDatePlaceholder: birthDatePlaceholder, Now: time.Now}
}

// Transform converts row into the target record for entity.
func (t *Transformer) Transform(entity models.Entity, row models.Row) (*models.Record, error) {
	switch entity {
	case models.EntityClient:
		c, err := t.ToClient(row)
		if err != nil {
			return nil, err
		}
		return c.Record(), nil
	case models.EntityEmployee:
		e, err := t.ToEmployee(row)
		if err != nil {
			return nil, err
		}
		return e.Record(), nil
	case models.EntityProduct:
		p, err := t.ToProduct(row)
		if err != nil {
			return nil, err
		}
		return p.Record(), nil
	case models.EntityService:
		s, err := t.ToService(row)
		if err != nil {
			return nil, err
		}
		return s.Record(), nil
	case models.EntityExchangeRate:
		x, err := t.ToExchangeRate(row)
		if err != nil {
			return nil, err
		}
		return x.Record(), nil
	}
	return nil, fmt.Errorf("no transform for entity %s", entity)
}

func (t *Transformer) ToClient(row models.Row) (models.Client, error) {
	id, err := legacyID(row)
	if err != nil {
		return models.Client{}, err
	}
	doc := utils.ParseIdentityDocument(utils.ToString(row["cedula"]))
	return models.Client{
		ID:         id,
		Nombre:     utils.ToString(row["nombres"]),
		Apellido:   utils.ToString(row["apellidos"]),
		TipoCedula: doc.Type,
		Cedula:     doc.Number,
		Telefono:   utils.ToString(row["telefono"]),
		Correo:     utils.ToString(row["correo"]),
	}, nil
}

func (t *Transformer) ToEmployee(row models.Row) (models.Employee, error) {
	id, err := legacyID(row)
	if err != nil {
		return models.Employee{}, err
	}
	doc := utils.ParseIdentityDocument(utils.ToString(row["cedula"]))

	birth := t.BirthDatePlaceholder
	if raw := utils.ToString(row["fecha_nacimiento"]); raw != "" {
		birth = utils.ClassifyDate(raw).Format(utils.ShapeDateKey, t.now())
	}

	return models.Employee{
		ID:                id,
		Nombre:            utils.ToString(row["nombres"]),
		Apellido:          utils.ToString(row["apellidos"]),
		TipoCedula:        doc.Type,
		Cedula:            doc.Number,
		Telefono:          utils.ToString(row["telefono"]),
		FechaDeNacimiento: birth,
	}, nil
}

func (t *Transformer) ToProduct(row models.Row) (models.Product, error) {
	id, err := legacyID(row)
	if err != nil {
		return models.Product{}, err
	}

	usd, err := money("precio_usd", row["precio_usd"])
	if err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:                  id,
		Nombre:              utils.ToString(row["nombre"]),
		Cantidad:            utils.IntOrZero(row["cantidad_disponible"]),
		ReferenciaEnDolares: usd,
	}
	if !utils.IsBlank(row["precio_ves"]) {
		bs, err := money("precio_ves", row["precio_ves"])
		if err != nil {
			return models.Product{}, err
		}
		p.PrecioBs = &bs
	}
	return p, nil
}

func (t *Transformer) ToService(row models.Row) (models.Service, error) {
	id, err := legacyID(row)
	if err != nil {
		return models.Service{}, err
	}
	usd, err := money("precio_usd", row["precio_usd"])
	if err != nil {
		return models.Service{}, err
	}
	return models.Service{
		ID:                  id,
		Nombre:              utils.ToString(row["nombre"]),
		Descripcion:         utils.ToString(row["descripcion"]),
		ReferenciaEnDolares: usd,
	}, nil
}

// ToExchangeRate keys the rate by the calendar day it was created. The
// legacy row id is dropped; TasasCambio assigns its own.
func (t *Transformer) ToExchangeRate(row models.Row) (models.ExchangeRate, error) {
	rate, ok := utils.ToDecimal(row["tasa"])
	if !ok {
		return models.ExchangeRate{}, fmt.Errorf("tasa %q is not a number", utils.ToString(row["tasa"]))
	}

	created := utils.ClassifyDate(utils.ToString(row["fecha_creacion"]))
	now := t.now()
	return models.ExchangeRate{
		Fecha:          created.Format(utils.ShapeDateKey, now),
		TasaBsPorDolar: rate,
		CreadoEn:       created.Format(utils.ShapeTimestamp, now),
	}, nil
}

func (t *Transformer) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func legacyID(row models.Row) (int64, error) {
	if utils.IsBlank(row["id"]) {
		return 0, nil
	}
	id, err := utils.ToInt64(row["id"])
	if err != nil {
		return 0, fmt.Errorf("id: %w", err)
	}
	return id, nil
}

// money rounds an amount to cents. NULL or blank is zero; any other value
// that is not a number is an error.
func money(column string, val interface{}) (decimal.Decimal, error) {
	if utils.IsBlank(val) {
		return decimal.Zero, nil
	}
	d, ok := utils.ToDecimal(val)
	if !ok {
		return decimal.Zero, fmt.Errorf("%s %q is not a number", column, utils.ToString(val))
	}
	return d.Round(2), nil
}
