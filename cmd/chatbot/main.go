package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"tiendabot/backend/internal/catalog"
	"tiendabot/backend/internal/chat"
	"tiendabot/backend/internal/config"
	"tiendabot/backend/internal/llm"
)

var exitWords = map[string]bool{
	"salir": true,
	"exit":  true,
	"quit":  true,
	"adios": true,
	"adiós": true,
}

const (
	farewellLine = "👋 ¡Hasta pronto! Gracias por tu visita."
	retryLine    = "Lo siento, no pude procesar tu mensaje. ¿Podrías intentar de nuevo?"
)

// turnLine maps an engine reply to the line to print and whether the REPL
// keeps running. A silent turn only ends the session on an explicit exit;
// unknown intents and model hiccups get a retry prompt.
func turnLine(state *chat.ConversationState, reply string) (string, bool) {
	if reply != "" {
		return reply, true
	}
	if state.CurrentIntent == chat.IntentExit {
		return farewellLine, false
	}
	return retryLine, true
}

func main() {
	debug := flag.Bool("debug", false, "print conversation stage and intent after each turn")
	flag.Parse()

	cfg := config.Load()
	if cfg.LLM.APIKey == "" {
		log.Fatal("OPENAI_API_KEY must be set")
	}

	ctx := context.Background()

	var index *catalog.Index
	if cfg.CatalogPath != "" {
		index = catalog.NewIndex(catalog.NewFileSource(cfg.CatalogPath))
		if err := index.Load(ctx); err != nil {
			log.Fatalf("catalog load: %v", err)
		}
	} else {
		index = catalog.NewSeededIndex()
	}

	client, err := llm.NewOpenAIClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   int64(cfg.LLM.MaxTokens),
	})
	if err != nil {
		log.Fatalf("llm client: %v", err)
	}

	engine := chat.NewEngine(index, client)
	state := engine.NewSession("")

	// The first message only triggers the welcome menu, so send one on
	// behalf of the user before reading input.
	fmt.Println(engine.SubmitMessage(ctx, state, "hola"))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nTú: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if exitWords[strings.ToLower(text)] {
			fmt.Println("\n" + farewellLine)
			break
		}

		line, keep := turnLine(state, engine.SubmitMessage(ctx, state, text))
		if !keep {
			fmt.Println("\n" + line)
			break
		}
		fmt.Printf("\nAsistente: %s\n", line)

		if *debug {
			fmt.Printf("[debug] stage=%s intent=%s cart_items=%d\n", state.Stage, state.CurrentIntent, state.Cart.ItemCount())
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
}
