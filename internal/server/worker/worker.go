// Package worker consumes the ingestion queue: it derives thumbnails for
// uploaded images and greets newly registered users.
package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
)

// ErrFileNotFound is returned when a queued file no longer matches a node of
// its owner.
var ErrFileNotFound = errors.New("file not found")

type Worker struct {
	repomanager repomanager.RepositoryManager
	blobs       blobstore.Store
	logger      logging.Logger
	router      *message.Router
}

// New wires the handlers for the files and users topics on subscriber.
// Failing messages are retried a few times and then dropped with an error
// log.
func New(m repomanager.RepositoryManager, blobs blobstore.Store, subscriber message.Subscriber, logger logging.Logger) (*Worker, error) {
	adapter := logging.NewWatermillAdapter(logger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 5 * time.Second}, adapter)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	w := &Worker{repomanager: m, blobs: blobs, logger: logger, router: router}

	router.AddMiddleware(
		w.dropFailed,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          adapter,
		}.Middleware,
	)

	router.AddNoPublisherHandler("thumbnails", common.TopicFiles, subscriber, func(msg *message.Message) error {
		var fm queue.FileMessage
		if err := queue.Decode(msg, &fm); err != nil {
			return err
		}
		return w.HandleFile(msg.Context(), fm)
	})

	router.AddNoPublisherHandler("welcome", common.TopicUsers, subscriber, func(msg *message.Message) error {
		var um queue.UserMessage
		if err := queue.Decode(msg, &um); err != nil {
			return err
		}
		return w.HandleUser(msg.Context(), um)
	})

	return w, nil
}

// Run blocks until ctx is done or the router is closed.
func (w *Worker) Run(ctx context.Context) error {
	return w.router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (w *Worker) Running() chan struct{} {
	return w.router.Running()
}

func (w *Worker) Close() error {
	return w.router.Close()
}

// HandleFile writes the thumbnail variants of an image node next to its
// original bytes. Other node types are skipped.
func (w *Worker) HandleFile(ctx context.Context, msg queue.FileMessage) error {
	if msg.FileID == "" {
		return fmt.Errorf("%w: missing fileId", common.ErrInvalidArgument)
	}
	if msg.UserID == "" {
		return fmt.Errorf("%w: missing userId", common.ErrInvalidArgument)
	}

	node, err := w.repomanager.Files().GetByIDAndUser(ctx, msg.FileID, msg.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, msg.FileID)
		}
		return err
	}
	if node.Type != models.TypeImage {
		return nil
	}

	data, err := w.blobs.Read(ctx, node.LocalPath)
	if err != nil {
		return fmt.Errorf("read original %s: %w", node.ID, err)
	}

	thumbs, err := Thumbnails(data, common.ThumbnailWidths)
	if err != nil {
		if errors.Is(err, ErrNotImage) {
			w.logger.Warn(ctx, "skipping thumbnails", "file_id", node.ID, "error", err)
			return nil
		}
		return err
	}

	for _, width := range common.ThumbnailWidths {
		location := node.LocalPath + "_" + strconv.Itoa(width)
		if err := w.blobs.Write(ctx, location, thumbs[width]); err != nil {
			return err
		}
	}

	w.logger.Info(ctx, "thumbnails generated", "file_id", node.ID)
	return nil
}

// HandleUser logs a welcome line for a new account.
func (w *Worker) HandleUser(ctx context.Context, msg queue.UserMessage) error {
	if msg.UserID == "" {
		return fmt.Errorf("%w: missing userId", common.ErrInvalidArgument)
	}

	u, err := w.repomanager.Users().GetByID(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("user %s: %w", msg.UserID, err)
	}

	w.logger.Info(ctx, "welcome "+u.Email, "user_id", u.ID)
	return nil
}

func (w *Worker) dropFailed(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			w.logger.Error(msg.Context(), "message dropped",
				"handler", message.HandlerNameFromCtx(msg.Context()),
				"message_id", msg.UUID,
				"error", err,
			)
			return nil, nil
		}
		return out, nil
	}
}
