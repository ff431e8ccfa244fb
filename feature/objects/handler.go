package objects

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"s3util/core/keygen"
	"s3util/core/logger"
	"s3util/core/objectstore"
	"s3util/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultPresignExpiry is used when the expires query parameter is omitted.
const DefaultPresignExpiry = 900 * time.Second

// MoveRequest is the body of a move request.
type MoveRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// KeyRequest is the body of a key generation request.
type KeyRequest struct {
	Prefix string `json:"prefix"`
}

// Handler handles HTTP requests for objects.
type Handler struct {
	store  *objectstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *objectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger, now: time.Now}
}

// RegisterRoutes registers the object routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Get("/", h.HandleList)
	group.Delete("/", h.HandleDelete)
	group.Get("/exists", h.HandleExists)
	group.Get("/metadata", h.HandleMetadata)
	group.Get("/size", h.HandleSize)
	group.Get("/presign", h.HandlePresign)
	group.Get("/value", h.HandleGetValue)
	group.Put("/value", h.HandlePutValue)
	group.Post("/move", h.HandleMove)
	group.Post("/wait", h.HandleWait)
	group.Post("/keys", h.HandleGenerateKey)
}

// HandleList lists every key under a prefix.
// @Summary List Keys
// @Description List all keys in the bucket that start with the given prefix.
// @Tags objects
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {object} map[string][]string "Keys"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	keys, err := h.store.List(c.UserContext(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"keys": keys})
}

// HandleDelete removes an object.
// @Summary Delete Object
// @Tags objects
// @Param key query string true "Object key"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Missing key"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	if err := h.store.DeleteObject(c.UserContext(), key); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleExists reports whether a key exists.
// @Summary Key Exists
// @Tags objects
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} map[string]bool "Existence"
// @Failure 400 {object} map[string]string "Missing key"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/exists [get]
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	exists, err := h.store.KeyExists(c.UserContext(), key)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// HandleMetadata returns the user metadata of an object.
// @Summary Get Metadata
// @Tags objects
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} map[string]map[string]string "Metadata"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/metadata [get]
func (h *Handler) HandleMetadata(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	metadata, found, err := h.store.GetMetadataIfKeyExists(c.UserContext(), key)
	if err != nil {
		return h.fail(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "object not found"})
	}
	return c.JSON(fiber.Map{"metadata": metadata})
}

// HandleSize returns the content length of an object.
// @Summary Get Size
// @Tags objects
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} map[string]int64 "Size in bytes"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/size [get]
func (h *Handler) HandleSize(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	size, err := h.store.GetSize(c.UserContext(), key)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"size": size})
}

// HandlePresign issues a time-limited download URL.
// @Summary Presign Download
// @Tags objects
// @Produce json
// @Param key query string true "Object key"
// @Param expires query int false "Expiry in seconds" default(900)
// @Success 200 {object} map[string]string "Presigned URL"
// @Failure 400 {object} map[string]string "Invalid expiry"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/presign [get]
func (h *Handler) HandlePresign(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	expires := DefaultPresignExpiry
	if raw := c.Query("expires"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expires must be a number of seconds"})
		}
		expires = time.Duration(seconds) * time.Second
	}
	u, err := h.store.GeneratePresignedURL(c.UserContext(), key, expires)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"url": u})
}

// HandleGetValue returns the stored JSON document.
// @Summary Get Value
// @Tags objects
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} object "Stored document"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Stored body is not JSON"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/value [get]
func (h *Handler) HandleGetValue(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	var raw json.RawMessage
	if err := h.store.GetSerializable(c.UserContext(), key, &raw); err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// HandlePutValue stores the request body as a JSON document.
// @Summary Put Value
// @Tags objects
// @Accept json
// @Param key query string true "Object key"
// @Param body body object true "Document"
// @Success 204 "Stored"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/value [put]
func (h *Handler) HandlePutValue(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	body := append([]byte(nil), c.Body()...)
	if !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body must be valid JSON"})
	}
	if err := h.store.PutSerializable(c.UserContext(), key, json.RawMessage(body)); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMove copies an object to a new key and deletes the source.
// @Summary Move Object
// @Tags objects
// @Accept json
// @Produce json
// @Param body body MoveRequest true "Source and target keys"
// @Success 200 {object} MoveRequest "Moved"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/move [post]
func (h *Handler) HandleMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil || req.Source == "" || req.Target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "source and target are required"})
	}
	if err := h.store.MoveObject(c.UserContext(), req.Source, req.Target); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(req)
}

// HandleWait blocks until the key exists or the wait times out.
// @Summary Wait For Key
// @Tags objects
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} map[string]bool "Key exists"
// @Failure 504 {object} map[string]string "Timed out"
// @Failure 502 {object} map[string]string "Storage Failure"
// @Router /objects/wait [post]
func (h *Handler) HandleWait(c *fiber.Ctx) error {
	key, ok := requireKey(c)
	if !ok {
		return nil
	}
	if err := h.store.WaitUntilKeyExists(c.UserContext(), key); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"exists": true})
}

// HandleGenerateKey returns a new date partitioned key.
// @Summary Generate Key
// @Tags objects
// @Accept json
// @Produce json
// @Param body body KeyRequest true "Key prefix"
// @Success 200 {object} map[string]string "Generated key"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /objects/keys [post]
func (h *Handler) HandleGenerateKey(c *fiber.Ctx) error {
	var req KeyRequest
	if err := c.BodyParser(&req); err != nil || req.Prefix == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prefix is required"})
	}
	return c.JSON(fiber.Map{"key": keygen.DatePartitionedUniqueKey(req.Prefix, h.now())})
}

func requireKey(c *fiber.Ctx) (string, bool) {
	key := c.Query("key")
	if key == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
		return "", false
	}
	return key, true
}

// fail writes the error response matching the failure kind.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	l := logger.WithRayID(h.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error("Object request failed", zap.Int("status", status), zap.Error(err))
	} else {
		l.Debug("Object request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps a facade error to an HTTP status code.
func StatusFor(err error) int {
	if errors.Is(err, storage.ErrWaitTimeout) {
		return fiber.StatusGatewayTimeout
	}
	switch objectstore.KindOf(err) {
	case objectstore.KindNotFound:
		return fiber.StatusNotFound
	case objectstore.KindInvalidOperation:
		return fiber.StatusBadRequest
	case objectstore.KindItemParsing:
		return fiber.StatusUnprocessableEntity
	case objectstore.KindCallout:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
