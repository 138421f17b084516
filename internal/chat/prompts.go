package chat

import (
	"fmt"
	"strings"

	"tiendabot/backend/internal/llm"
)

// Prompts are data: fixed instruction sets plus builders that attach the
// per-turn context. User-facing text stays Spanish, matching the shop.

const intentSystemPrompt = `Eres un clasificador de intenciones para un chatbot de e-commerce.

Clasifica los mensajes del usuario en UNA de estas intenciones:
1. BROWSE - Ver productos disponibles
2. MANAGE_CART - Añadir/quitar productos del carrito
3. VIEW_CART - Ver contenido del carrito
4. CHECKOUT - Completar compra o proporcionar datos de checkout
5. EXIT - Salir de la conversación
6. OUT_OF_CONTEXT - Preguntas no relacionadas con compras
7. UNKNOWN - Intención poco clara

IMPORTANTE - RESPUESTAS CONTEXTUALES:
- Si el bot acaba de preguntar si quiere finalizar la compra y el usuario responde afirmativamente ("si", "sí", "ok", "dale", "vale", "claro"), la intención es CHECKOUT
- Si el usuario responde "no" o negativamente a esa misma pregunta, la intención es UNKNOWN (para que pueda seguir comprando)
- Respuestas cortas como "si", "no", "ok" se interpretan según la conversación reciente

EJEMPLOS:
Bot: "¿Quieres finalizar la compra?" → Usuario: "si" → CHECKOUT
Bot: "¿Quieres finalizar la compra?" → Usuario: "no" → UNKNOWN
Usuario: "quiero comprar" (sin contexto previo) → CHECKOUT

Responde SOLO con el nombre de la intención. Sin explicaciones.`

const extractionSystemPrompt = `Extrae información estructurada de mensajes de usuarios en contexto e-commerce.

Devuelve formato JSON:
{
  "action": "add" | "remove" | "update",
  "quantity": entero (default 1),
  "product_reference": {
    "type": "name" | "id" | "index" | "last",
    "value": string
  }
}

REGLAS:
1. action:
   - "add" para añadir/agregar/quiero/dame (incrementa cantidad)
   - "remove" para quitar/eliminar/sacar (reduce o elimina)
   - "update" para cambiar/modificar/poner/establecer cantidad específica
2. quantity: extraer número, default 1
3. product_reference:
   - type="name": nombre EXACTO del producto (de la lista de candidatos)
   - type="id": código del producto (de la lista de candidatos)
   - type="index": número de lista ("producto 5", "número 3")
   - type="last": referencias como "más", "eso", "mismo", O solo una cantidad

IMPORTANTE:
- Si hay PRODUCTOS CANDIDATOS listados, usa el nombre o ID EXACTO de esa lista
- NO inventes nombres, usa solo los que aparecen en los candidatos

EJEMPLOS:
"añade 2 camisetas azules" -> {"action": "add", "quantity": 2, "product_reference": {"type": "name", "value": "Camiseta Básica Azul"}}
"quiero producto 5" -> {"action": "add", "quantity": 1, "product_reference": {"type": "index", "value": "5"}}
"quita 3 del último" -> {"action": "remove", "quantity": 3, "product_reference": {"type": "last", "value": "last"}}
"pon 3 en lugar de 1" -> {"action": "update", "quantity": 3, "product_reference": {"type": "last", "value": "last"}}
"ok entonces 10" (tras hablar de un producto) -> {"action": "add", "quantity": 10, "product_reference": {"type": "last", "value": "last"}}

Responde SOLO con JSON.`

const outOfContextSystemPrompt = `Eres un chatbot de e-commerce amigable pero enfocado.

Cuando los usuarios hagan preguntas fuera de tema:
1. Reconoce amablemente
2. Redirige a funciones de compra
3. Mantenlo breve (2-3 líneas)

Sé amigable pero siempre redirige a compras.`

type intentContext struct {
	Stage           Stage
	Hint            PromptHint
	CartItemCount   int
	LastProductName string
	History         []Message
}

func intentMessages(userMessage string, ic intentContext) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: intentSystemPrompt}}

	if len(ic.History) > 0 {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: historyBlock(ic.History, 200)})
	}

	var parts []string
	switch ic.Hint {
	case HintAwaitName:
		parts = append(parts, "Esperando nombre del cliente.")
	case HintAwaitCity:
		parts = append(parts, "Esperando ciudad del cliente.")
	case HintCheckoutQuestion:
		parts = append(parts, "El bot acaba de preguntar si quiere finalizar la compra.")
	}
	if ic.CartItemCount > 0 {
		parts = append(parts, fmt.Sprintf("El carrito tiene %d items.", ic.CartItemCount))
	}
	if ic.LastProductName != "" {
		parts = append(parts, fmt.Sprintf("Último producto: %s", ic.LastProductName))
	}
	if len(parts) > 0 {
		var b strings.Builder
		b.WriteString("CONTEXTO:\n")
		for _, p := range parts {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: b.String()})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("Mensaje del usuario: %q", userMessage)})
	return messages
}

func extractionMessages(userMessage string, lastProductName string, history []Message, candidates []ProductSummary) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: extractionSystemPrompt}}

	if len(history) > 0 {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: historyBlock(history, 0)})
	}

	if len(candidates) > 0 {
		var b strings.Builder
		b.WriteString("PRODUCTOS CANDIDATOS (usa nombres/IDs exactos):\n")
		for _, c := range candidates {
			fmt.Fprintf(&b, "- ID: %s | Nombre: %s | Precio: $%.2f | Stock: %d\n", c.ID, c.Name, c.Price, c.Stock)
		}
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: b.String()})
	}

	if lastProductName != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: fmt.Sprintf("CONTEXTO: El último producto mencionado fue '%s'", lastProductName),
		})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})
	return messages
}

func outOfContextMessages(userMessage string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: outOfContextSystemPrompt},
		{Role: llm.RoleUser, Content: userMessage},
	}
}

// historyBlock renders recent transcript entries for a prompt. maxLen > 0
// truncates each entry to keep the prompt bounded.
func historyBlock(history []Message, maxLen int) string {
	var b strings.Builder
	b.WriteString("CONVERSACIÓN RECIENTE:\n")
	for _, msg := range history {
		role := "Usuario"
		if msg.Role == RoleAssistant {
			role = "Bot"
		}
		content := msg.Content
		if runes := []rune(content); maxLen > 0 && len(runes) > maxLen {
			content = string(runes[:maxLen])
		}
		fmt.Fprintf(&b, "%s: %s\n", role, content)
	}
	return b.String()
}
