package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/watch"
)

func (s *Server) listIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := s.svc.Ideas.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

func (s *Server) createIdea(w http.ResponseWriter, r *http.Request) {
	var req idea.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	i, err := s.svc.Ideas.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, i)
}

func (s *Server) deleteIdea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Ideas.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.svc.Watch.ListFeeds(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feeds)
}

func (s *Server) createFeed(w http.ResponseWriter, r *http.Request) {
	var req watch.CreateFeedRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := s.svc.Watch.CreateFeed(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) deleteFeed(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Watch.DeleteFeed(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	articles, err := s.svc.Watch.Articles(r.Context(), watch.ArticleFilter{Search: q.Get("q"), Category: q.Get("category")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) listArticleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Watch.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type mailFolderView struct {
	Folder   mailbox.Folder    `json:"folder"`
	Unread   int               `json:"unread"`
	Messages []mailbox.Message `json:"messages"`
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	folder := mailbox.Folder(mux.Vars(r)["folder"])
	messages, err := s.svc.Mailbox.List(r.Context(), folder, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	unread, err := s.svc.Mailbox.UnreadCount(r.Context(), folder)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mailFolderView{Folder: folder, Unread: unread, Messages: messages})
}

func (s *Server) getMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.svc.Mailbox.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) listMailAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.svc.MailAccounts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) createMailAccount(w http.ResponseWriter, r *http.Request) {
	var req mailbox.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := s.svc.MailAccounts.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) deleteMailAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.MailAccounts.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Dashboard.Summary(r.Context(), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt64(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	entries, err := s.svc.Activity.GetRecentActivity(r.Context(), activity.ListActivityOptions{
		EntityType: activity.EntityType(q.Get("entity_type")),
		EntityID:   q.Get("entity_id"),
		Limit:      int(limit),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
