package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/logger"
	"github.com/MrSnakeDoc/statuary/internal/scheduler"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatIntroResponse struct {
	StatueID       string        `json:"statueId"`
	Messages       []chatMessage `json:"messages"`
	QuickQuestions []string      `json:"quickQuestions"`
}

// ChatIntro returns the greeting and suggested questions of a statue.
func ChatIntro(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := pathStatue(d, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, chatIntroResponse{
			StatueID:       s.ID,
			Messages:       []chatMessage{{Role: "assistant", Content: domain.Greeting(s)}},
			QuickQuestions: domain.QuickQuestions(),
		})
	}
}

type chatRequest struct {
	Question string `json:"question" validate:"required,max=500"`
}

func (c *chatRequest) normalize()             { c.Question = strings.TrimSpace(c.Question) }
func (c *chatRequest) invalidMessage() string { return "Please enter a question" }

// Chat answers a question after the simulated typing delay. A newer
// question or leaving the statue cancels the wait; the superseded
// request then gets 204 and no answer.
func Chat(d deps.Deps) http.HandlerFunc {
	rec := d.Recorder()
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		s, ok := pathStatue(d, w, r)
		if !ok {
			return
		}
		var req chatRequest
		if !decode(w, r, &req) {
			return
		}

		reply := d.Replies.Schedule(id, d.Replies.Delay())
		if err := reply.Wait(r.Context()); err != nil {
			if errors.Is(err, scheduler.ErrReplyCancelled) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			d.Logger.Debug("chat reply abandoned", logger.String("visitor", id), logger.Error(err))
			return
		}

		topic := domain.Classify(req.Question, s)
		rec.IncChatReply(string(topic))
		writeJSON(w, http.StatusOK, chatMessage{Role: "assistant", Content: domain.Respond(req.Question, s)})
	}
}
