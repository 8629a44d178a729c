package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/activities/internal/adapters/http/api"
	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// failingDeps injects errors that the registry cannot produce.
type failingDeps struct {
	err error
}

func (f *failingDeps) List(context.Context) (map[string]model.Activity, error) {
	return nil, f.err
}
func (f *failingDeps) Signup(context.Context, string, string) error     { return f.err }
func (f *failingDeps) Unregister(context.Context, string, string) error { return f.err }

func newTestMux() *http.ServeMux {
	store := repository.NewRosterStore(context.Background())
	server := api.NewServer(store, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestListActivities(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux()

		Convey("When listing activities", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 200 with a JSON mapping", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var list map[string]model.Activity
				So(json.Unmarshal(w.Body.Bytes(), &list), ShouldBeNil)
				So(list, ShouldContainKey, "Chess Club")
				So(list, ShouldContainKey, "Science Club")
				So(len(list), ShouldEqual, 9)
			})

			Convey("And every activity should expose all four fields", func() {
				var list map[string]map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &list), ShouldBeNil)
				for _, a := range list {
					So(a, ShouldContainKey, "description")
					So(a, ShouldContainKey, "schedule")
					So(a, ShouldContainKey, "max_participants")
					So(a, ShouldContainKey, "participants")
				}
			})

			Convey("And the response should carry a request id", func() {
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When the dependency fails", func() {
			server := api.NewServer(&failingDeps{err: errors.New("boom")}, &mockStatsProvider{})
			mux := http.NewServeMux()
			server.Register(context.Background(), mux)

			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 500 with a detail body", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "detail")
			})
		})
	})
}

func TestSignup(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux()

		Convey("When signing up a new student", func() {
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=uniquetest0@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 200 with a success message", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["message"], ShouldContainSubstring, "Signed up")
				So(body["message"], ShouldContainSubstring, "uniquetest0@mergington.edu")
				So(body["message"], ShouldContainSubstring, "Chess Club")
			})

			Convey("And the participant should appear in the listing exactly once", func() {
				listReq := httptest.NewRequest("GET", "/activities", nil)
				lw := httptest.NewRecorder()
				mux.ServeHTTP(lw, listReq)

				var list map[string]model.Activity
				So(json.Unmarshal(lw.Body.Bytes(), &list), ShouldBeNil)
				occurrences := 0
				for _, p := range list["Chess Club"].Participants {
					if p == "uniquetest0@mergington.edu" {
						occurrences++
					}
				}
				So(occurrences, ShouldEqual, 1)
			})

			Convey("And signing up again should return 400 with the conflict detail", func() {
				dup := httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=uniquetest0@mergington.edu", nil)
				dw := httptest.NewRecorder()
				mux.ServeHTTP(dw, dup)

				So(dw.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.Unmarshal(dw.Body.Bytes(), &body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "already signed up")
			})
		})

		Convey("When signing up for a nonexistent activity", func() {
			req := httptest.NewRequest("POST", "/activities/NonexistentActivity/signup?email=student@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "Activity not found")
			})
		})

		Convey("When the email query parameter is missing", func() {
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 400 without touching state", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				listReq := httptest.NewRequest("GET", "/activities", nil)
				lw := httptest.NewRecorder()
				mux.ServeHTTP(lw, listReq)
				var list map[string]model.Activity
				So(json.Unmarshal(lw.Body.Bytes(), &list), ShouldBeNil)
				So(len(list["Chess Club"].Participants), ShouldEqual, 2)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest("GET", "/activities/Chess%20Club/signup?email=a@b.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the mux should reject it", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestUnregister(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux()

		Convey("When unregistering a signed-up student", func() {
			signup := httptest.NewRequest("POST", "/activities/Programming%20Class/signup?email=removetest@mergington.edu", nil)
			sw := httptest.NewRecorder()
			mux.ServeHTTP(sw, signup)
			So(sw.Code, ShouldEqual, http.StatusOK)

			req := httptest.NewRequest("DELETE", "/activities/Programming%20Class/unregister?email=removetest@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 200 with a success message", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["message"], ShouldContainSubstring, "Unregistered")
				So(body["message"], ShouldContainSubstring, "removetest@mergington.edu")
			})

			Convey("And the participant should be gone from the listing", func() {
				listReq := httptest.NewRequest("GET", "/activities", nil)
				lw := httptest.NewRecorder()
				mux.ServeHTTP(lw, listReq)

				var list map[string]model.Activity
				So(json.Unmarshal(lw.Body.Bytes(), &list), ShouldBeNil)
				So(list["Programming Class"].HasParticipant("removetest@mergington.edu"), ShouldBeFalse)
				So(len(list["Programming Class"].Participants), ShouldEqual, 2)
			})
		})

		Convey("When unregistering someone who never signed up", func() {
			req := httptest.NewRequest("DELETE", "/activities/Chess%20Club/unregister?email=ghost@x.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 400 with the not-registered detail", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "not registered")
			})
		})

		Convey("When unregistering from a nonexistent activity", func() {
			req := httptest.NewRequest("DELETE", "/activities/NonexistentActivity/unregister?email=student@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the email query parameter is missing", func() {
			req := httptest.NewRequest("DELETE", "/activities/Chess%20Club/unregister", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux()

		Convey("When fetching health", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should serve the metrics exposition", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When fetching stats", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should serve JSON statistics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldBeTrue)
			})
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given the request id middleware", t, func() {
		handler := api.RequestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		Convey("When the client supplies an id", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			req.Header.Set("X-Request-ID", "client-supplied")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			Convey("Then the supplied id should be echoed back", func() {
				So(w.Header().Get("X-Request-ID"), ShouldEqual, "client-supplied")
			})
		})

		Convey("When the client supplies none", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			Convey("Then one should be generated", func() {
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})
	})
}
