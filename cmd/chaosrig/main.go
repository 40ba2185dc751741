// Command chaosrig wires the TOML game loader, the Engine actor, the
// WebSocket control channel, and a fake controller pad into a running
// process.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/configfile"
	"github.com/chaosrig/engine/engine"
	"github.com/chaosrig/engine/fakepad"
	"github.com/chaosrig/engine/transport/wschannel"
	"golang.org/x/net/websocket"
)

const defaultPort = "8080"

func main() {
	cfg := engine.DefaultConfig()
	fmt.Println("Configuration loaded (using defaults).")
	fmt.Printf("Tick period: %v, active mod cap: %d, time per mod: %v\n", cfg.TickPeriod, cfg.NumActive, cfg.TimePerModifier)

	sys := actor.NewEngine()
	fmt.Println("Actor engine created.")

	// The fake pad stands in for both the raw input source and the
	// console-facing output sink until a real HID driver is wired in.
	pad := fakepad.New()

	gamesDir := os.Getenv("CHAOSRIG_GAMES_DIR")
	if gamesDir == "" {
		gamesDir = "./games"
	}
	loader := configfile.NewLoader(gamesDir)
	fmt.Printf("Game loader rooted at %s\n", gamesDir)

	enginePID := sys.Spawn(actor.NewProps(engine.NewEngineActorProducer(sys, cfg, pad, loader)))
	if enginePID == nil {
		panic("failed to spawn engine actor")
	}
	fmt.Printf("Engine actor spawned with PID: %s\n", enginePID)

	time.Sleep(50 * time.Millisecond) // let Started land before traffic arrives

	go pumpRawEvents(sys, enginePID, pad)

	controlServer := wschannel.NewServer(sys, enginePID)
	fmt.Println("Control channel server created.")

	http.HandleFunc("/", handleHealthCheck())
	http.Handle("/control", websocket.Handler(controlServer.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
		fmt.Printf("PORT environment variable not set, defaulting to %s\n", port)
	}

	listenAddr := ":" + port
	fmt.Printf("Server starting on address %s\n", listenAddr)
	err := http.ListenAndServe(listenAddr, nil)
	if err != nil {
		fmt.Println("Server stopped:", err)
		fmt.Println("Shutting down engine...")
		sys.Shutdown(5 * time.Second)
		fmt.Println("Engine shutdown complete.")
	}
}

// pumpRawEvents forwards whatever the fake pad receives into the
// engine pipeline, standing in for a real HID read loop.
func pumpRawEvents(sys *actor.Engine, enginePID *actor.PID, pad *fakepad.Pad) {
	for e := range pad.Events() {
		sys.Send(enginePID, engine.RawEvent{Event: e}, nil)
	}
}

func handleHealthCheck() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}
}
