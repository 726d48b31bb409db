package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"microblog/internal/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	APIKey   string `json:"api_key"`
}

type registeredUser struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

func (api *API) POSTUserHandler(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.fail(w, r, "register", service.BadRequest("Invalid JSON body"))
		return
	}

	user, err := api.services.Users.Register(r.Context(), body.Name, body.Password, body.APIKey)
	if err != nil {
		api.fail(w, r, "register", err)
		return
	}

	api.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"name":    user.Name,
	}).Info("User registered")
	api.ok(w, "register", map[string]interface{}{
		"user": registeredUser{ID: user.ID, Name: user.Name, APIKey: user.APIKey},
	})
}

func (api *API) GETMeHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := api.services.Users.GetByAPIKey(r.Context(), apiKey(r))
	if err != nil {
		api.fail(w, r, "get_me", err)
		return
	}
	api.ok(w, "get_me", map[string]interface{}{"user": profile})
}

func (api *API) GETUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		api.fail(w, r, "get_user", err)
		return
	}

	profile, err := api.services.Users.GetByID(r.Context(), userID)
	if err != nil {
		api.fail(w, r, "get_user", err)
		return
	}
	api.ok(w, "get_user", map[string]interface{}{"user": profile})
}

func (api *API) POSTFollowHandler(w http.ResponseWriter, r *http.Request) {
	api.logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Debug("POSTFollowHandler called")

	targetID, err := pathID(r)
	if err != nil {
		api.fail(w, r, "follow", err)
		return
	}

	if err := api.services.Follows.Add(r.Context(), apiKey(r), targetID); err != nil {
		api.fail(w, r, "follow", err)
		return
	}

	api.metrics.FollowRequests.WithLabelValues("follow").Inc()
	api.ok(w, "follow", nil)
}

func (api *API) DELETEFollowHandler(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathID(r)
	if err != nil {
		api.fail(w, r, "unfollow", err)
		return
	}

	if err := api.services.Follows.Remove(r.Context(), apiKey(r), targetID); err != nil {
		api.fail(w, r, "unfollow", err)
		return
	}

	api.metrics.UnfollowRequests.WithLabelValues("unfollow").Inc()
	api.ok(w, "unfollow", nil)
}
