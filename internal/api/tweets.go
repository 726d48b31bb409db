package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"microblog/internal/service"
)

type tweetRequest struct {
	TweetData     *string `json:"tweet_data"`
	TweetMediaIDs []uint  `json:"tweet_media_ids"`
}

func (api *API) POSTTweetHandler(w http.ResponseWriter, r *http.Request) {
	api.logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Debug("POSTTweetHandler called")

	var body tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.fail(w, r, "post_tweet", service.BadRequest("Invalid JSON body"))
		return
	}
	if body.TweetData == nil {
		api.fail(w, r, "post_tweet", service.BadRequest("tweet_data is required"))
		return
	}

	tweetID, err := api.services.Tweets.Post(r.Context(), apiKey(r), *body.TweetData, body.TweetMediaIDs)
	if err != nil {
		api.fail(w, r, "post_tweet", err)
		return
	}

	api.metrics.TweetsPosted.WithLabelValues("post_tweet").Inc()
	api.ok(w, "post_tweet", map[string]interface{}{"tweet_id": tweetID})
}

func (api *API) GETTweetsHandler(w http.ResponseWriter, r *http.Request) {
	tweets, err := api.services.Tweets.ListByAuthor(r.Context(), apiKey(r))
	if err != nil {
		api.fail(w, r, "get_tweets", err)
		return
	}
	api.ok(w, "get_tweets", map[string]interface{}{"tweets": tweets})
}

func (api *API) GETTweetHandler(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r)
	if err != nil {
		api.fail(w, r, "get_tweet", err)
		return
	}

	tweet, err := api.services.Tweets.Get(r.Context(), tweetID)
	if err != nil {
		api.fail(w, r, "get_tweet", err)
		return
	}
	api.ok(w, "get_tweet", map[string]interface{}{"tweet": tweet})
}

func (api *API) DELETETweetHandler(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r)
	if err != nil {
		api.fail(w, r, "delete_tweet", err)
		return
	}

	if err := api.services.Tweets.Delete(r.Context(), apiKey(r), tweetID); err != nil {
		api.fail(w, r, "delete_tweet", err)
		return
	}

	api.logger.WithField("tweet_id", tweetID).Info("Tweet deleted")
	api.ok(w, "delete_tweet", nil)
}

func (api *API) POSTLikeHandler(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r)
	if err != nil {
		api.fail(w, r, "like", err)
		return
	}

	if err := api.services.Likes.Add(r.Context(), apiKey(r), tweetID); err != nil {
		api.fail(w, r, "like", err)
		return
	}

	api.metrics.LikeRequests.WithLabelValues("like").Inc()
	api.ok(w, "like", nil)
}

func (api *API) DELETELikeHandler(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r)
	if err != nil {
		api.fail(w, r, "unlike", err)
		return
	}

	if err := api.services.Likes.Remove(r.Context(), apiKey(r), tweetID); err != nil {
		api.fail(w, r, "unlike", err)
		return
	}

	api.metrics.LikeRequests.WithLabelValues("unlike").Inc()
	api.ok(w, "unlike", nil)
}
