package models

// Entity names the kind of row a table holds.
type Entity string

const (
	EntityClient         Entity = "Client"
	EntityEmployee       Entity = "Employee"
	EntityProduct        Entity = "Product"
	EntityService        Entity = "Service"
	EntityExchangeRate   Entity = "ExchangeRate"
	EntitySale           Entity = "Sale"
	EntityPayrollPayment Entity = "PayrollPayment"
)

// TableMapping pairs a legacy table with its destination.
type TableMapping struct {
	Entity      Entity
	SourceTable string
	TargetTable string
	// KeyColumns is the target uniqueness key checked before insert.
	// Empty means rows are inserted without an existence check.
	KeyColumns []string
	// Migratable is false for tables whose legacy shape cannot be mapped;
	// they are counted and reported only.
	Migratable bool
}

// MigrationOrder lists every table in processing order. Parents come before
// anything that references them.
func MigrationOrder() []TableMapping {
	return []TableMapping{
		{Entity: EntityClient, SourceTable: "clientes", TargetTable: "Clientes", KeyColumns: []string{"tipo_cedula", "cedula"}, Migratable: true},
		{Entity: EntityEmployee, SourceTable: "empleados", TargetTable: "Empleados", Migratable: true},
		{Entity: EntityProduct, SourceTable: "productos", TargetTable: "Productos", Migratable: true},
		{Entity: EntityService, SourceTable: "servicios", TargetTable: "Servicios", Migratable: true},
		{Entity: EntityExchangeRate, SourceTable: "tasas_dia", TargetTable: "TasasCambio", KeyColumns: []string{"fecha"}, Migratable: true},
		{Entity: EntitySale, SourceTable: "ventas", TargetTable: "Ventas"},
		{Entity: EntityPayrollPayment, SourceTable: "pagos_nomina", TargetTable: "PagosNomina"},
	}
}
