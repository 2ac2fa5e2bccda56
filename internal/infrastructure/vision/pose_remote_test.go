package vision

import (
	"context"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drip-backend/internal/domain/entity"
)

func TestRemotePoseDetector_Detect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pose", r.URL.Path)
		file, _, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		data, _ := io.ReadAll(file)
		assert.NotEmpty(t, data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"landmarks":{
			"left_shoulder":{"x":0.4,"y":0.3,"visibility":0.98},
			"RIGHT_SHOULDER":{"x":0.6,"y":0.3},
			"LEFT_KNEE":{"x":0.4,"y":0.8,"visibility":0.1}
		}}`))
	}))
	defer srv.Close()

	d := NewRemotePoseDetector(srv.URL+"/", NewStdCodec(80), time.Second)
	d.MinVisibility = 0.5

	pose, err := d.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)))
	require.NoError(t, err)
	require.Len(t, pose, 2)
	require.Equal(t, entity.Landmark{X: 0.4, Y: 0.3, Visibility: 0.98}, pose[entity.PartLeftShoulder])
	require.Equal(t, 1.0, pose[entity.PartRightShoulder].Visibility)
}

func TestRemotePoseDetector_NoBody(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"empty landmarks": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"landmarks":null}`))
		},
		"not found": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			d := NewRemotePoseDetector(srv.URL, NewStdCodec(80), time.Second)
			_, err := d.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 2, 2)))
			require.ErrorIs(t, err, entity.ErrNoBodyDetected)
		})
	}
}

func TestRemotePoseDetector_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewRemotePoseDetector(srv.URL, NewStdCodec(80), time.Second)
	_, err := d.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 2, 2)))
	require.Error(t, err)
	require.NotErrorIs(t, err, entity.ErrNoBodyDetected)
	require.Contains(t, err.Error(), "500")
}

func TestRemotePoseDetector_CheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	d := NewRemotePoseDetector(srv.URL, NewStdCodec(80), time.Second)
	require.NoError(t, d.CheckHealth(context.Background()))
}
