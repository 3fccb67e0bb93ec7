package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rentagent/app/client/rentalapi"
	"rentagent/app/service/extract"
	"rentagent/app/service/session"

	"github.com/google/uuid"
	"github.com/samber/do"
)

type listingAPI interface {
	LandmarkByName(ctx context.Context, name string) (rentalapi.Result, error)
	SearchLandmarks(ctx context.Context, query string) (rentalapi.Result, error)
	HousesByCommunity(ctx context.Context, community string, opts rentalapi.ListOptions) (rentalapi.Result, error)
	HousesByPlatform(ctx context.Context, filter rentalapi.PlatformFilter) (rentalapi.Result, error)
	HousesNearby(ctx context.Context, landmarkID string, maxDistance int, opts rentalapi.ListOptions) (rentalapi.Result, error)
	HouseByID(ctx context.Context, houseID string) (rentalapi.Result, error)
	InitHouses(ctx context.Context) (rentalapi.Result, error)
	Rent(ctx context.Context, houseID, platform string) (rentalapi.Result, error)
	Terminate(ctx context.Context, houseID, platform string) (rentalapi.Result, error)
}

type conditionExtractor interface {
	Available(modelIP string) bool
	Extract(ctx context.Context, req extract.Request) (extract.Conditions, error)
}

// Service runs the dialog loop: classify the message, extract and merge
// conditions, query the listing API and format the reply.
type Service struct {
	api       listingAPI
	sessions  *session.Service
	extractor conditionExtractor
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		api:       do.MustInvoke[*rentalapi.Client](di),
		sessions:  do.MustInvoke[*session.Service](di),
		extractor: do.MustInvoke[*extract.ModelExtractor](di),
	}, nil
}

// Reply answers one user message within a session. A blank session id
// starts a new session; the returned id must be sent back by the client to
// continue the dialog.
func (s *Service) Reply(ctx context.Context, sessionID, message, modelIP string) (string, string) {
	if strings.TrimSpace(sessionID) == "" {
		sessionID = uuid.NewString()
	}

	switch in := detectIntent(message); in.kind {
	case intentReset:
		s.sessions.Reset(sessionID)
		return s.finish(sessionID, message, s.handleReset(ctx))
	case intentRent, intentTerminate:
		return s.finish(sessionID, message, s.handleAction(ctx, in, message))
	case intentDetail:
		return s.finish(sessionID, message, s.handleDetail(ctx, in.houseID))
	}

	history, prevConditions := s.sessions.Snapshot(sessionID)

	incoming := s.extractConditions(ctx, sessionID, message, modelIP, history)
	conditions := extract.Merge(prevConditions, incoming)

	if len(conditions) == 0 {
		reply := "未识别到具体条件，您可以分多轮说，例如先讲「海淀」，再说「5000以内」「一居」「整租」「近地铁」。"
		return s.finish(sessionID, message, reply)
	}

	result, err := s.runQuery(ctx, conditions)
	reply := formatReply(result, err)

	s.sessions.SetConditions(sessionID, conditions)

	return s.finish(sessionID, message, reply)
}

func (s *Service) finish(sessionID, message, reply string) (string, string) {
	s.sessions.AppendTurn(sessionID, message, reply)
	return reply, sessionID
}

func (s *Service) extractConditions(ctx context.Context, sessionID, message, modelIP string, history []session.Turn) extract.Conditions {
	if s.extractor.Available(modelIP) {
		req := extract.Request{
			Text:      message,
			ModelIP:   modelIP,
			SessionID: sessionID,
		}
		for _, turn := range history {
			req.History = append(req.History, extract.HistoryEntry{
				Role:    turn.Role,
				Content: turn.Content,
			})
		}

		conditions, err := s.extractor.Extract(ctx, req)
		if err != nil {
			slog.Warn("Model extraction failed, falling back to rules",
				slog.String("session_id", sessionID),
				slog.Any("error", err),
			)
		} else if len(conditions) > 0 {
			return conditions
		}
	}

	return extract.FromText(message)
}

func (s *Service) handleReset(ctx context.Context) string {
	res, err := s.api.InitHouses(ctx)
	if err != nil {
		return fmt.Sprintf("重置失败：%v", err)
	}
	if msg := res.ErrorMessage(); msg != "" {
		return fmt.Sprintf("重置失败：%s", msg)
	}
	return "房源数据已重置。"
}

func (s *Service) handleAction(ctx context.Context, in intent, message string) string {
	platform := detectPlatform(message)

	if in.kind == intentRent {
		res, err := s.api.Rent(ctx, in.houseID, platform)
		if msg := actionError(res, err); msg != "" {
			return fmt.Sprintf("租房操作失败：%s", msg)
		}
		return fmt.Sprintf("已为您办理租房，房源 %s（%s）。", in.houseID, platform)
	}

	res, err := s.api.Terminate(ctx, in.houseID, platform)
	if msg := actionError(res, err); msg != "" {
		return fmt.Sprintf("退租失败：%s", msg)
	}
	return fmt.Sprintf("已退租房源 %s（%s）。", in.houseID, platform)
}

func (s *Service) handleDetail(ctx context.Context, houseID string) string {
	res, err := s.api.HouseByID(ctx, houseID)
	if err != nil {
		return fmt.Sprintf("查询失败：%v", err)
	}
	if msg := res.ErrorMessage(); msg != "" {
		return fmt.Sprintf("查询失败：%s", msg)
	}
	return formatReply(res, nil)
}

func actionError(res rentalapi.Result, err error) string {
	if err != nil {
		return err.Error()
	}
	return res.ErrorMessage()
}
