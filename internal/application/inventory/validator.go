package inventory

import (
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementInput es el comando crudo para registrar un movimiento.
// Los IDs de bodega en 0 se tratan como ausentes.
type MovementInput struct {
	ProductID       int64
	WarehouseFromID int64
	WarehouseToID   int64
	Type            string
	Quantity        int64
	Reason          string
	UserID          int64
}

// MovementCommand es el comando ya validado y normalizado: las bodegas que el
// tipo no usa quedan en nil aunque el caller las haya enviado.
type MovementCommand struct {
	ProductID int64
	Type      string
	From      *int64
	To        *int64
	Quantity  int64
	Reason    string
	UserID    int64
}

// AffectedWarehouseID devuelve la bodega cuyo stock resultante decide la alerta
// de stock bajo: destino para IN/RETURN/ADJUST/TRANSFER, origen para OUT/SALE.
func (c *MovementCommand) AffectedWarehouseID() int64 {
	switch c.Type {
	case entity.MovementTypeOUT, entity.MovementTypeSALE:
		return *c.From
	default:
		return *c.To
	}
}

// ValidateMovement aplica la tabla de reglas por tipo y las restricciones
// universales (IDs positivos, cantidad positiva). Función pura: sin efectos.
//
//	IN       -> requiere destino
//	OUT      -> requiere origen
//	TRANSFER -> requiere origen y destino distintos
//	SALE     -> requiere origen
//	RETURN   -> requiere destino
//	ADJUST   -> requiere destino; Quantity es el valor absoluto a fijar
func ValidateMovement(in MovementInput) (*MovementCommand, error) {
	if in.ProductID <= 0 {
		return nil, domain.Validation("product_id", "debe ser un entero positivo")
	}
	if in.UserID <= 0 {
		return nil, domain.Validation("user_id", "debe ser un entero positivo")
	}
	if in.Quantity <= 0 {
		return nil, domain.Validation("quantity", "debe ser mayor que cero")
	}

	cmd := &MovementCommand{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    in.UserID,
	}

	requireFrom := func() error {
		if in.WarehouseFromID <= 0 {
			return domain.Validation("warehouse_from_id", "es obligatorio para el tipo "+in.Type)
		}
		from := in.WarehouseFromID
		cmd.From = &from
		return nil
	}
	requireTo := func() error {
		if in.WarehouseToID <= 0 {
			return domain.Validation("warehouse_to_id", "es obligatorio para el tipo "+in.Type)
		}
		to := in.WarehouseToID
		cmd.To = &to
		return nil
	}

	switch in.Type {
	case entity.MovementTypeIN, entity.MovementTypeRETURN, entity.MovementTypeADJUST:
		if err := requireTo(); err != nil {
			return nil, err
		}
	case entity.MovementTypeOUT, entity.MovementTypeSALE:
		if err := requireFrom(); err != nil {
			return nil, err
		}
	case entity.MovementTypeTRANSFER:
		if err := requireFrom(); err != nil {
			return nil, err
		}
		if err := requireTo(); err != nil {
			return nil, err
		}
		if *cmd.From == *cmd.To {
			return nil, domain.Validation("warehouse_to_id", "debe ser distinto de la bodega origen")
		}
	default:
		return nil, domain.Validation("type", "tipo de movimiento desconocido")
	}

	return cmd, nil
}
