package httpserver

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// ErrorHandler answers errors returned by handlers. Defaults to a JSON body
	// carrying the fiber error's status and message.
	ErrorHandler fiber.ErrorHandler
	// Ready backs /manage/ready. Nil means always ready.
	Ready func() bool
}

func InitFiberServer(o Options) *fiber.App {
	if o.ErrorHandler == nil {
		o.ErrorHandler = JSONErrorHandler
	}

	s := fiber.New(fiber.Config{
		AppName:      o.AppName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		IdleTimeout:  o.IdleTimeout,
		ErrorHandler: o.ErrorHandler,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())

	hc := healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}
	if o.Ready != nil {
		hc.ReadinessProbe = func(*fiber.Ctx) bool { return o.Ready() }
	}
	s.Use(healthcheck.New(hc))

	return s
}

// JSONErrorHandler writes {"error": message}, keeping the status of a *fiber.Error.
func JSONErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
