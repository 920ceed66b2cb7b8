package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestFallsBackAcrossCandidates(t *testing.T) {
	var hits []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		switch r.URL.Path {
		case "/api/v2/learnCourse/courseDirectory":
			http.NotFound(w, r)
		case "/learnCourse/courseDirectory":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "77", body["courseId"])
			require.Equal(t, "88", body["classId"])
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success": true, "data": {"coursename": "c", "chapters": []}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), OpCourseDirectory, Params{CourseID: "77", ClassID: "88"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, []string{"/api/v2/learnCourse/courseDirectory", "/learnCourse/courseDirectory"}, hits)
}

func TestRequestSurfacesLastError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Request(context.Background(), OpQuestionAnswer, Params{QuestionID: "1", ParentID: "2"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "http 500")
}

func TestRequestForwardsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok-1", r.Header.Get("ua-authorization"))
		require.Equal(t, "tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": 200, "data": {}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithToken("tok-1"))
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), OpChapterContent, Params{NodeID: "5"})
	require.NoError(t, err)
	require.True(t, resp.Success)
}

func TestDGUTEnvironmentUsesGetRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/uaapi/questionAnswer/q9", r.URL.Path)
		require.Equal(t, "p3", r.URL.Query().Get("parentId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "A"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithEnvironment(EnvDGUT))
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), OpQuestionAnswer, Params{QuestionID: "q9", ParentID: "p3"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	// a bare object is its own payload
	require.JSONEq(t, `{"answer": "A"}`, string(resp.Data))
}

func TestResolveAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": {"correctAnswerList": ["<p>东</p>"], "questionType": 1}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	ans, err := client.ResolveAnswer(context.Background(), "q1", "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"东"}, ans.Values)
	require.EqualValues(t, 1, ans.TypeCode)
}

func TestDetectEnvironment(t *testing.T) {
	require.Equal(t, EnvDGUT, DetectEnvironment("course.dgut.edu.cn"))
	require.Equal(t, EnvDefault, DetectEnvironment("www.ulearning.cn"))
}

func TestWrapResponseEnvelopes(t *testing.T) {
	resp, err := wrapResponse([]byte(`{"success": false, "message": "拒绝访问", "data": null}`))
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "拒绝访问", resp.Message)

	resp, err = wrapResponse([]byte(`{"code": 500, "msg": "boom", "data": {}}`))
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "boom", resp.Message)

	resp, err = wrapResponse([]byte(`{"code": 200, "data": {"x": 1}}`))
	require.NoError(t, err)
	require.True(t, resp.Success)

	resp, err = wrapResponse([]byte(`{"chapters": []}`))
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.JSONEq(t, `{"chapters": []}`, string(resp.Data))

	_, err = wrapResponse([]byte(`not json`))
	require.Error(t, err)
}

func TestIDsFromURL(t *testing.T) {
	courseID, classID, err := IDsFromURL("https://course.ulearning.cn/learn/index?courseId=123&classId=456")
	require.NoError(t, err)
	require.Equal(t, "123", courseID)
	require.Equal(t, "456", classID)

	courseID, classID, err = IDsFromURL("https://course.ulearning.cn/learn/#/course?courseid=9&classid=8")
	require.NoError(t, err)
	require.Equal(t, "9", courseID)
	require.Equal(t, "8", classID)

	_, _, err = IDsFromURL("https://course.ulearning.cn/learn/index")
	require.Error(t, err)
}
