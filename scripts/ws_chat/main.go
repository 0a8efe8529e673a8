// Interactive smoke-test client: connects, creates or joins a room and
// relays stdin lines as chat messages.
//
// Usage: go run ./scripts/ws_chat -url ws://localhost:8080/ws -room demo -user alice -create
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type inbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "websocket endpoint")
	room := flag.String("room", "demo", "room id")
	user := flag.String("user", "smoke", "display name")
	password := flag.String("password", "", "room password")
	create := flag.Bool("create", false, "create the room instead of joining")
	flag.Parse()

	ctx := context.Background()

	conn, _, err := websocket.Dial(ctx, *url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	action := "join"
	if *create {
		action = "create"
	}
	join := map[string]any{
		"roomId":   *room,
		"username": *user,
		"password": *password,
		"action":   action,
	}
	if err := wsjson.Write(ctx, conn, inbound{Type: "joinRoom", Data: join}); err != nil {
		fmt.Fprintf(os.Stderr, "join: %v\n", err)
		os.Exit(1)
	}

	go func() {
		for {
			var raw json.RawMessage
			if err := wsjson.Read(ctx, conn, &raw); err != nil {
				fmt.Fprintf(os.Stderr, "read: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("<< %s\n", raw)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		msg := map[string]any{"username": *user, "text": text}
		if strings.HasPrefix(text, "/ephemeral ") {
			msg["text"] = strings.TrimPrefix(text, "/ephemeral ")
			msg["ephemeral"] = true
		}
		if err := wsjson.Write(ctx, conn, inbound{Type: "sendMessage", Data: msg}); err != nil {
			fmt.Fprintf(os.Stderr, "send: %v\n", err)
			os.Exit(1)
		}
	}
}
