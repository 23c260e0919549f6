package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/application/sales"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
)

func TestCreateOrder_RegularFeliz(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 250), item("it-2", 4, 500))

	resp, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID: "cli-1",
		Type:     entity.OrderTypeRegular,
		Lines: []dto.OrderLineRequest{
			{StockItemID: "it-1", Qty: 2}, // 2 x 250 = 500
			{StockItemID: "it-2", Qty: 1}, // 1 x 500 = 500
		},
		Payment: dto.PaymentRequest{Amount: dec("1000"), Method: entity.PaymentMethodCash},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, resp.Status, "una venta regular queda pagada de inmediato")
	assert.True(t, dec("1000").Equal(resp.Total))
	assert.True(t, resp.Outstanding.IsZero())

	// Stock descontado y unidades vendidas acumuladas.
	assert.Equal(t, 8, env.stock.items["it-1"].QtyInStock)
	assert.Equal(t, 3, env.stock.items["it-2"].QtyInStock)
	assert.Equal(t, 2, env.stock.items["it-1"].SoldStock)

	// Un pago exacto registrado.
	payments := env.sales.payments[resp.OrderID]
	require.Len(t, payments, 1)
	assert.True(t, dec("1000").Equal(payments[0].Amount))

	// Precio congelado en las líneas.
	lines := env.sales.lines[resp.OrderID]
	require.Len(t, lines, 2)
	assert.True(t, dec("250").Equal(lines[0].UnitPrice))
}

// Escenario de referencia: subtotal 1000 con 10% → descuento 100, total 900.
func TestCreateOrder_ConDescuentoPorcentual(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 1000))

	resp, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID: "cli-1",
		Type:     entity.OrderTypeRegular,
		Lines:    []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 1}},
		Discount: &dto.DiscountRequest{Kind: entity.DiscountPercentage, Value: dec("10")},
		Payment:  dto.PaymentRequest{Amount: dec("900")},
	})
	require.NoError(t, err)
	assert.True(t, dec("900").Equal(resp.Total))

	order := env.sales.orders[resp.OrderID]
	assert.True(t, dec("1000").Equal(order.Subtotal))
	assert.True(t, dec("100").Equal(order.DiscountAmount))
	assert.True(t, order.Total.Equal(order.Subtotal.Sub(order.DiscountAmount)),
		"invariante total = subtotal - descuento")
}

// El monto de una venta regular debe ser exactamente el total (campo de solo
// lectura en la UI): cualquier diferencia es error de validación sin efectos.
func TestCreateOrder_RegularMontoDistintoAlTotal(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 250))
	before := env.stock.snapshot()

	_, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID: "cli-1",
		Type:     entity.OrderTypeRegular,
		Lines:    []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 2}},
		Payment:  dto.PaymentRequest{Amount: dec("400")}, // total real: 500
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, before, env.stock.snapshot(), "validación fallida no toca el stock")
	assert.Empty(t, env.sales.orders)
}

func TestCreateOrder_CamposFaltantesPorTipo(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 250))

	// Layaway sin number_of_months.
	_, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID: "cli-1",
		Type:     entity.OrderTypeLayaway,
		Lines:    []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 1}},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "number_of_months")

	// Carrito vacío y tipo inválido: reporta todos los ofensores juntos.
	_, err = env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		Type: "GIFT",
	})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "client_id")
	assert.Contains(t, ve.Fields, "type")
	assert.Contains(t, ve.Fields, "lines")
}

// Si una línea excede el stock, las ya descontadas se compensan: ningún
// artículo cambia de cantidad y no persiste orden alguna.
func TestCreateOrder_StockInsuficienteReversaTodo(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 250), item("it-2", 1, 500))
	before := env.stock.snapshot()

	_, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID: "cli-1",
		Type:     entity.OrderTypeRegular,
		Lines: []dto.OrderLineRequest{
			{StockItemID: "it-1", Qty: 2}, // se aplica
			{StockItemID: "it-2", Qty: 3}, // excede: dispara la reversa
		},
		Payment: dto.PaymentRequest{Amount: dec("2000")},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, before, env.stock.snapshot(),
		"snapshot antes/después idéntico: todo-o-nada a nivel de orden")
	assert.Empty(t, env.sales.orders, "no persiste ninguna orden parcial")
	assert.Equal(t, 0, env.stock.items["it-1"].SoldStock,
		"la compensación devuelve las unidades al no-vendido")

	// El ledger conserva la historia completa: DECREASE + INCREASE compensatorio.
	movs, _ := env.stock.ListByItem("it-1", 0, 0)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementDecrease, movs[0].Kind)
	assert.Equal(t, entity.MovementIncrease, movs[1].Kind)
	assert.Equal(t, entity.ReasonRollback, movs[1].Reason)
}

// Escenario de referencia layaway: total 3000, 3 meses desde 2024-01-15
// → fecha límite 2024-04-15.
func TestCreateOrder_LayawayPlanYFechaLimite(t *testing.T) {
	env := newSalesEnv(item("it-1", 5, 1000))
	payDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	resp, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID:       "cli-1",
		Type:           entity.OrderTypeLayaway,
		Lines:          []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 3}},
		Payment:        dto.PaymentRequest{PaymentDate: &payDate},
		NumberOfMonths: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, resp.Status, "sin abono inicial queda PENDING")
	assert.True(t, dec("3000").Equal(resp.Outstanding))

	plan := env.sales.plans[resp.OrderID]
	require.NotNil(t, plan)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), plan.DueDate)

	// El stock sí se descuenta al apartar.
	assert.Equal(t, 2, env.stock.items["it-1"].QtyInStock)
}

func TestCreateOrder_LayawayConAbonoInicialQuedaDeposit(t *testing.T) {
	env := newSalesEnv(item("it-1", 5, 1000))

	resp, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID:       "cli-1",
		Type:           entity.OrderTypeLayaway,
		Lines:          []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 2}},
		Payment:        dto.PaymentRequest{Amount: dec("500")},
		NumberOfMonths: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDeposit, resp.Status)
	assert.True(t, dec("1500").Equal(resp.Outstanding))
}

func TestCreateOrder_LayawayAbonoMayorAlTotal(t *testing.T) {
	env := newSalesEnv(item("it-1", 5, 1000))
	before := env.stock.snapshot()

	_, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID:       "cli-1",
		Type:           entity.OrderTypeLayaway,
		Lines:          []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 1}},
		Payment:        dto.PaymentRequest{Amount: dec("1500")},
		NumberOfMonths: 1,
	})
	assert.ErrorIs(t, err, domain.ErrOverpayment)
	assert.Equal(t, before, env.stock.snapshot())
}

func TestCreateOrder_ClienteInexistente(t *testing.T) {
	env := newSalesEnv(item("it-1", 5, 1000))

	_, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID: "cli-404",
		Type:     entity.OrderTypeRegular,
		Lines:    []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 1}},
		Payment:  dto.PaymentRequest{Amount: dec("1000")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_RestauraStockPreOrden(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 250), item("it-2", 4, 500))
	before := env.stock.snapshot()

	resp, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID:       "cli-1",
		Type:           entity.OrderTypeLayaway,
		Lines:          []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 3}, {StockItemID: "it-2", Qty: 2}},
		Payment:        dto.PaymentRequest{Amount: dec("100")},
		NumberOfMonths: 2,
	})
	require.NoError(t, err)
	assert.NotEqual(t, before, env.stock.snapshot())

	status, err := env.cancelUC.Cancel(context.Background(), resp.OrderID, "user-2")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, status)
	assert.Equal(t, before, env.stock.snapshot(),
		"cancelar repone cada artículo a su nivel previo a la orden")
	assert.Equal(t, entity.OrderStatusCancelled, env.sales.orders[resp.OrderID].Status)
}

func TestCancel_OrdenPagadaNoSeCancela(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 250))

	resp, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID: "cli-1",
		Type:     entity.OrderTypeRegular,
		Lines:    []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 1}},
		Payment:  dto.PaymentRequest{Amount: dec("250")},
	})
	require.NoError(t, err)

	_, err = env.cancelUC.Cancel(context.Background(), resp.OrderID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 9, env.stock.items["it-1"].QtyInStock, "el stock no se repone")
}

func TestCancel_DobleCancelacionRechazada(t *testing.T) {
	env := newSalesEnv(item("it-1", 10, 250))

	resp, err := env.createUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		ClientID:       "cli-1",
		Type:           entity.OrderTypeLayaway,
		Lines:          []dto.OrderLineRequest{{StockItemID: "it-1", Qty: 1}},
		NumberOfMonths: 1,
	})
	require.NoError(t, err)

	_, err = env.cancelUC.Cancel(context.Background(), resp.OrderID, "user-1")
	require.NoError(t, err)
	_, err = env.cancelUC.Cancel(context.Background(), resp.OrderID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 10, env.stock.items["it-1"].QtyInStock, "la reposición no se duplica")
}

// OVERDUE se deriva en lectura: nunca hay transición almacenada.
func TestEffectiveStatus_OverdueDerivado(t *testing.T) {
	due := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	order := &entity.SaleOrder{
		ID:          "ord-1",
		Status:      entity.OrderStatusDeposit,
		Total:       dec("3000"),
		Outstanding: dec("2000"),
		DueDate:     &due,
	}

	after := due.AddDate(0, 0, 1)
	resp := sales.ToOrderResponse(order, after)
	assert.Equal(t, entity.OrderStatusOverdue, resp.Status)
	assert.Equal(t, "Overdue", resp.StatusLabel)
	assert.Equal(t, entity.OrderStatusDeposit, order.Status, "el estado almacenado no cambia")

	beforeDue := due.AddDate(0, 0, -1)
	assert.Equal(t, entity.OrderStatusDeposit, sales.ToOrderResponse(order, beforeDue).Status)

	// Con saldo en cero no hay mora aunque pase la fecha.
	order.Outstanding = dec("0")
	assert.Equal(t, entity.OrderStatusDeposit, sales.ToOrderResponse(order, after).Status)
}
