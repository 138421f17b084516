package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tiendabot/backend/internal/domain"
	"tiendabot/backend/internal/llm"
)

const welcomeMessage = `👋 **¡Bienvenido a la tienda online!**

Puedo ayudarte a:
📦 Ver productos: 'Muéstrame los productos'
➕ Añadir al carrito: 'Añade 2 Camiseta Básica'
🛒 Ver carrito: 'Qué llevo en el carrito'
💳 Comprar: 'Quiero finalizar la compra'
👋 Salir: 'Salir'

¿Qué te gustaría hacer?`

const (
	parseErrorMessage    = "❌ No entendí eso. Intenta con: 'Añade 2 Camiseta Básica' o 'Quiero producto 1'"
	notFoundMessage      = "❌ No encontré ese producto. Intenta con: 'Añade 2 Camiseta Básica' o 'Quiero producto 1'"
	outOfContextFallback = "Soy un asistente de compras y solo puedo ayudarte con productos. ¿Quieres ver nuestro catálogo?"

	authErrorMessage      = "⚠️ Error de configuración de API key. Por favor verifica tu configuración."
	rateLimitErrorMessage = "⚠️ Límite de peticiones excedido. Por favor espera unos minutos e intenta de nuevo."
	genericErrorMessage   = "❌ Ocurrió un error. Por favor intenta de nuevo."
)

// llmErrorMessage maps a failed model call to one of three fixed user-facing
// strings. The turn still completes normally.
func llmErrorMessage(err error) string {
	switch llm.Classify(err) {
	case llm.KindAuth:
		log.Printf("[chat] WARN: llm auth failure: %v", err)
		return authErrorMessage
	case llm.KindRateLimit:
		log.Printf("[chat] WARN: llm rate limited: %v", err)
		return rateLimitErrorMessage
	default:
		log.Printf("[chat] WARN: llm call failed: %v", err)
		return genericErrorMessage
	}
}

// handleBrowse lists the full catalog and snapshots the listing so "product
// N" references can be resolved on later turns.
func (e *Engine) handleBrowse(state *ConversationState) {
	products := e.catalog.All()

	state.LastSearchResults = state.LastSearchResults[:0]
	var b strings.Builder
	b.WriteString("📦 **Productos disponibles:**\n\n")
	for i, p := range products {
		state.LastSearchResults = append(state.LastSearchResults, ProductSummary{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Stock:    p.Stock,
		})
		fmt.Fprintf(&b, "%d. **%s** - $%.2f (%s) - Stock: %d\n", i+1, p.Name, p.Price, p.Category, p.Stock)
	}
	b.WriteString("\n💡 Puedes decir: 'Añade 2 Camiseta Básica' o 'Quiero producto 1'")

	state.appendAssistant(b.String())
	state.Stage = StageShopping
	state.LastPromptHint = HintNone
}

// handleManageCart extracts a structured cart action from the message,
// resolves its product reference and applies it. Every failure mode becomes
// a corrective assistant message; the turn never aborts.
func (e *Engine) handleManageCart(ctx context.Context, state *ConversationState, userMessage string) {
	reply := func() string {
		action, err := e.extractCartAction(ctx, state, userMessage)
		if err != nil {
			return llmErrorMessage(err)
		}
		if action == nil {
			return parseErrorMessage
		}

		product, ok := e.resolveRef(state, action.Ref)
		if !ok {
			return notFoundMessage
		}
		state.LastProductID = product.ID

		return applyCartAction(state.Cart, action, product)
	}()

	state.appendAssistant(reply)
	state.Stage = StageShopping
	state.LastPromptHint = HintNone
}

// applyCartAction executes add/remove/update against the cart and renders
// the outcome. Stock shortfalls leave the cart unchanged.
func applyCartAction(cart *domain.Cart, action *cartAction, product domain.Product) string {
	switch action.Action {
	case actionRemove:
		current, ok := cart.Get(product.ID)
		if !ok {
			return fmt.Sprintf("⚠️ %s no está en tu carrito.", product.Name)
		}
		if action.Quantity >= current.Quantity {
			_ = cart.RemoveItem(product.ID)
			return fmt.Sprintf("✅ %s eliminado del carrito.", product.Name)
		}
		remaining := current.Quantity - action.Quantity
		_ = cart.UpdateQuantity(product.ID, remaining)
		return fmt.Sprintf("✅ Reducida cantidad de %s: %d → %d", product.Name, current.Quantity, remaining)

	case actionUpdate:
		current, ok := cart.Get(product.ID)
		if !ok {
			// Updating something not in the cart behaves as an add.
			if err := cart.AddItem(product, action.Quantity); err != nil {
				return stockOrGenericMessage(err, product)
			}
			return fmt.Sprintf("✅ %dx %s añadido al carrito.", action.Quantity, product.Name)
		}
		if action.Quantity == 0 {
			_ = cart.RemoveItem(product.ID)
			return fmt.Sprintf("✅ %s eliminado del carrito.", product.Name)
		}
		if err := cart.UpdateQuantity(product.ID, action.Quantity); err != nil {
			return stockOrGenericMessage(err, product)
		}
		return fmt.Sprintf("✅ Cantidad de %s actualizada: %d → %d", product.Name, current.Quantity, action.Quantity)

	default: // add
		if err := cart.AddItem(product, action.Quantity); err != nil {
			return stockOrGenericMessage(err, product)
		}
		return fmt.Sprintf("✅ %dx %s añadido al carrito.", action.Quantity, product.Name)
	}
}

func stockOrGenericMessage(err error, product domain.Product) string {
	if errors.Is(err, domain.ErrInsufficientStock) {
		return fmt.Sprintf("⚠️ Solo hay %d unidades de %s disponibles.", product.Stock, product.Name)
	}
	if errors.Is(err, domain.ErrInvalidQuantity) {
		return parseErrorMessage
	}
	log.Printf("[chat] WARN: cart operation failed: %v", err)
	return genericErrorMessage
}

// handleViewCart renders the cart, nudging toward checkout when non-empty.
func (e *Engine) handleViewCart(state *ConversationState) {
	if state.Cart.IsEmpty() {
		state.appendAssistant("🛒 Tu carrito está vacío.\n\n💡 Puedes ver productos con: 'Muéstrame los productos'")
		state.LastPromptHint = HintNone
		return
	}

	var b strings.Builder
	b.WriteString("🛒 **Tu carrito:**\n\n")
	for _, item := range state.Cart.Items() {
		fmt.Fprintf(&b, "- %dx %s - $%.2f\n", item.Quantity, item.Product.Name, item.Subtotal())
	}
	fmt.Fprintf(&b, "\n**Total: $%.2f**", state.Cart.Total())
	b.WriteString("\n\n💡 ¿Quieres finalizar la compra?")

	state.appendAssistant(b.String())
	state.LastPromptHint = HintCheckoutQuestion
}

var checkoutTriggerWords = []string{"comprar", "finalizar", "checkout", "pagar"}

var namePrefixes = []string{"mi nombre es", "me llamo", "soy", "mi nombre:"}

// handleCheckout drives the multi-turn data collection: cart gate, then
// customer name, then city and order confirmation.
func (e *Engine) handleCheckout(state *ConversationState, userMessage string) {
	if state.Cart.IsEmpty() {
		state.appendAssistant("⚠️ Tu carrito está vacío. Añade productos antes de comprar.")
		state.Stage = StageShopping
		state.LastPromptHint = HintNone
		return
	}

	if state.CustomerName == "" {
		e.collectCustomerName(state, userMessage)
		return
	}
	if state.CustomerCity == "" {
		e.completeOrder(state, userMessage)
		return
	}
}

func (e *Engine) collectCustomerName(state *ConversationState, userMessage string) {
	state.Stage = StageCheckout

	lower := strings.ToLower(userMessage)
	for _, word := range checkoutTriggerWords {
		if strings.Contains(lower, word) {
			state.appendAssistant("📝 Para completar la compra necesito tus datos.\n¿Cuál es tu nombre?")
			state.LastPromptHint = HintAwaitName
			return
		}
	}

	name := extractName(userMessage)
	if name == "" {
		state.appendAssistant("⚠️ No entendí tu nombre. ¿Cuál es tu nombre?")
		state.LastPromptHint = HintAwaitName
		return
	}

	state.CustomerName = name
	state.appendAssistant("✅ Perfecto. ¿En qué ciudad?")
	state.LastPromptHint = HintAwaitCity
}

// extractName strips common lead-in phrases and returns the trimmed rest.
// Anything non-empty counts as a name; the flow is deliberately permissive.
func extractName(message string) string {
	name := strings.TrimSpace(message)
	lower := strings.ToLower(name)
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(lower, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}
	return name
}

func (e *Engine) completeOrder(state *ConversationState, city string) {
	state.CustomerCity = strings.TrimSpace(city)

	order, err := domain.CreateOrder(state.Cart, state.CustomerName, state.CustomerCity)
	if err != nil {
		log.Printf("[chat] WARN: order creation failed: %v", err)
		state.CustomerCity = ""
		state.appendAssistant("⚠️ No pude registrar esa ciudad. ¿En qué ciudad?")
		state.LastPromptHint = HintAwaitCity
		return
	}

	state.Order = order
	state.appendAssistant(formatOrderConfirmation(order))
	state.Cart.Clear()
	// Name and city are in-progress checkout data; a later purchase collects
	// them again.
	state.CustomerName = ""
	state.CustomerCity = ""
	state.Stage = StageCompleted
	state.LastPromptHint = HintNone
}

func formatOrderConfirmation(order *domain.Order) string {
	var b strings.Builder
	b.WriteString("✅ **¡Pedido confirmado!**\n\n")
	fmt.Fprintf(&b, "📦 **Orden #%s**\n", order.ID)
	fmt.Fprintf(&b, "👤 Cliente: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "📍 Ciudad: %s\n\n", order.CustomerCity)
	b.WriteString("**Productos:**\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %dx %s - $%.2f\n", item.Quantity, item.Product.Name, item.Subtotal())
	}
	fmt.Fprintf(&b, "\n💰 **Total: $%.2f**\n\n", order.Total)
	b.WriteString("¡Gracias por tu compra! 🎉")
	return b.String()
}

// handleOutOfContext produces a friendly redirect via the model, with a
// fixed fallback when the call fails.
func (e *Engine) handleOutOfContext(ctx context.Context, state *ConversationState, userMessage string) {
	reply, err := e.llm.Complete(ctx, outOfContextMessages(userMessage))
	if err != nil {
		log.Printf("[chat] WARN: out-of-context reply failed: %v", err)
		reply = outOfContextFallback
	}

	state.appendAssistant(strings.TrimSpace(reply))
	state.Stage = StageShopping
	state.LastPromptHint = HintNone
}
