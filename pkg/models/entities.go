package models

import "github.com/shopspring/decimal"

type Client struct {
	ID         int64
	Nombre     string
	Apellido   string
	TipoCedula string
	Cedula     int64
	Telefono   string
	Correo     string
}

func (c Client) Record() *Record {
	r := &Record{}
	return r.Set("id", idOrNil(c.ID)).
		Set("nombre", c.Nombre).
		Set("apellido", nullIfEmpty(c.Apellido)).
		Set("tipo_cedula", c.TipoCedula).
		Set("cedula", c.Cedula).
		Set("telefono", nullIfEmpty(c.Telefono)).
		Set("correo", nullIfEmpty(c.Correo))
}

type Employee struct {
	ID                int64
	Nombre            string
	Apellido          string
	TipoCedula        string
	Cedula            int64
	Telefono          string
	FechaDeNacimiento string // DD/MM/YYYY
}

func (e Employee) Record() *Record {
	r := &Record{}
	return r.Set("id", idOrNil(e.ID)).
		Set("nombre", e.Nombre).
		Set("apellido", nullIfEmpty(e.Apellido)).
		Set("tipo_cedula", e.TipoCedula).
		Set("cedula", e.Cedula).
		Set("telefono", nullIfEmpty(e.Telefono)).
		Set("fecha_de_nacimiento", e.FechaDeNacimiento)
}

type Product struct {
	ID                  int64
	Nombre              string
	Cantidad            int64
	ReferenciaEnDolares decimal.Decimal
	// PrecioBs is nil when the bolivar price must be derived from the rate.
	PrecioBs *decimal.Decimal
}

func (p Product) Record() *Record {
	r := &Record{}
	return r.Set("id", idOrNil(p.ID)).
		Set("nombre", p.Nombre).
		Set("cantidad", p.Cantidad).
		Set("referencia_en_dolares", p.ReferenciaEnDolares.InexactFloat64()).
		Set("precio_bs", decimalOrNil(p.PrecioBs))
}

type Service struct {
	ID                  int64
	Nombre              string
	Descripcion         string
	ReferenciaEnDolares decimal.Decimal
}

// Record always leaves precio_bs NULL; it is computed from the day's rate.
func (s Service) Record() *Record {
	r := &Record{}
	return r.Set("id", idOrNil(s.ID)).
		Set("nombre", s.Nombre).
		Set("descripcion", nullIfEmpty(s.Descripcion)).
		Set("referencia_en_dolares", s.ReferenciaEnDolares.InexactFloat64()).
		Set("precio_bs", nil)
}

type ExchangeRate struct {
	Fecha          string // DD/MM/YYYY
	TasaBsPorDolar decimal.Decimal
	CreadoEn       string // ISO-8601
}

func (x ExchangeRate) Record() *Record {
	r := &Record{}
	return r.Set("fecha", x.Fecha).
		Set("tasa_bs_por_dolar", x.TasaBsPorDolar.InexactFloat64()).
		Set("creado_en", x.CreadoEn)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func decimalOrNil(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}

// idOrNil lets the target assign a row id when the legacy row had none.
func idOrNil(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
