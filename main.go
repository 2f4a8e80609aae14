package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/Natek01/full-stack-chat-app/modules/broadcast"
	"github.com/Natek01/full-stack-chat-app/modules/gateway"
	"github.com/Natek01/full-stack-chat-app/modules/registry"
	"github.com/Natek01/full-stack-chat-app/modules/relay"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Chat Relay Server ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	registryModule := registry.NewModule(app.Logger())
	relayModule := relay.NewModule(registryModule.Store(), app.Logger())
	broadcastModule := broadcast.NewModule()
	gatewayModule := gateway.NewModule(relayModule.Router(), broadcastModule.Hub(), app.Logger())

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - registry:  connection registry (single source of truth for presence)
	// - relay:     message router (EventEmitterModule, depends on registry)
	// - broadcast: WebSocket hub + event consumer (executes delivery scopes)
	// - gateway:   Fiber transport (depends on relay and broadcast)
	app.Register(registryModule)
	app.Register(relayModule)
	app.Register(broadcastModule)
	app.Register(gatewayModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber with WebSocket support")
	log.Println("  - Event Bus: NATS JetStream (internal pubsub)")
	log.Println("")
	log.Println("Event-Driven Relay:")
	log.Println("  - MessageBroadcast events -> broadcast module -> all clients")
	log.Println("  - PrivateMessage events -> broadcast module -> recipient + sender")
	log.Println("  - PresenceUpdated events -> broadcast module -> all clients")
	log.Println("")
	log.Printf("Endpoints (http://localhost:%s):", port)
	log.Println("  GET /         - Liveness probe")
	log.Println("  GET /health   - Health check")
	log.Printf("  GET /ws       - WebSocket endpoint (ws://localhost:%s/ws)", port)
	log.Println("")
	log.Println("Inbound events: join, send_message, send_private_message, typing, stop_typing")
	log.Println("Outbound events: connected, receive_message, receive_private_message,")
	log.Println("                 user_typing, user_stopped_typing, update_users")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
