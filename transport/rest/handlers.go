package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
)

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.View, error)
	GetView(ctx context.Context, gameID string) (*entity.View, error)
	DeleteGame(ctx context.Context, gameID string) error

	SubmitCoordinate(ctx context.Context, gameID, role string, x, y int) (*entity.View, error)
	TriggerRoundStart(ctx context.Context, gameID string) (*entity.View, error)
	Reset(ctx context.Context, gameID string) (*entity.View, error)
}

type coordinateRequest struct {
	Role string `json:"role" binding:"required"`
	X    *int   `json:"x" binding:"required"`
	Y    *int   `json:"y" binding:"required"`
}

type errorResponse struct {
	Error string       `json:"error"`
	Kind  string       `json:"kind"`
	Game  *entity.View `json:"game,omitempty"`
}

type GameHandlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func NewGameHandlers(logger *slog.Logger, gameUseCase gameUseCase) *GameHandlers {
	return &GameHandlers{
		logger:      logger,
		gameUseCase: gameUseCase,
	}
}

func (that *GameHandlers) Register(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.POST("", that.createGame)
		games.GET("/:id", that.getGame)
		games.POST("/:id/coordinates", that.submitCoordinate)
		games.POST("/:id/round", that.startRound)
		games.POST("/:id/reset", that.resetGame)
		games.DELETE("/:id", that.deleteGame)
	}
}

func (that *GameHandlers) createGame(ctx *gin.Context) {
	view, err := that.gameUseCase.CreateGame(ctx.Request.Context())
	if err != nil {
		that.fail(ctx, "createGame", http.StatusUnprocessableEntity, nil, err)
		return
	}

	ctx.JSON(http.StatusCreated, view)
}

func (that *GameHandlers) getGame(ctx *gin.Context) {
	view, err := that.gameUseCase.GetView(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.fail(ctx, "getGame", http.StatusUnprocessableEntity, nil, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (that *GameHandlers) submitCoordinate(ctx *gin.Context) {
	var request coordinateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "bad_request"})
		return
	}

	view, err := that.gameUseCase.SubmitCoordinate(ctx.Request.Context(), ctx.Param("id"), request.Role, *request.X, *request.Y)
	if err != nil {
		that.fail(ctx, "submitCoordinate", http.StatusUnprocessableEntity, view, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (that *GameHandlers) startRound(ctx *gin.Context) {
	view, err := that.gameUseCase.TriggerRoundStart(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.fail(ctx, "startRound", http.StatusConflict, view, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (that *GameHandlers) resetGame(ctx *gin.Context) {
	view, err := that.gameUseCase.Reset(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.fail(ctx, "resetGame", http.StatusUnprocessableEntity, nil, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (that *GameHandlers) deleteGame(ctx *gin.Context) {
	if err := that.gameUseCase.DeleteGame(ctx.Request.Context(), ctx.Param("id")); err != nil {
		that.fail(ctx, "deleteGame", http.StatusUnprocessableEntity, nil, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// fail - maps err to a status: unknown games are 404, rejected input gets rejectedStatus,
// anything else is a 500 without details.
func (that *GameHandlers) fail(ctx *gin.Context, method string, rejectedStatus int, view *entity.View, err error) {
	log := that.logger.With("method", method)
	kind := apperror.Kind(err)

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		ctx.JSON(http.StatusNotFound, errorResponse{Error: "game doesn't exist", Kind: kind})
	case apperror.IsValidation(err):
		log.Debug("input rejected", "kind", kind, "error", err)
		ctx.JSON(rejectedStatus, errorResponse{Error: err.Error(), Kind: kind, Game: view})
	default:
		log.Error("failed to handle request", "error", err)
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: kind})
	}
}
