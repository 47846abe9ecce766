package movies

// Payloads exchanged with the backends. Field names follow the backends'
// JSON.

type Actor struct {
	ActorSeq  int64  `json:"actorSeq"`
	ActorName string `json:"actorName"`
	Role      string `json:"role,omitempty"`
}

type MovieDetail struct {
	MovieSeq       int64   `json:"movieSeq"`
	MovieTitle     string  `json:"movieTitle"`
	Director       string  `json:"director,omitempty"`
	Genre          string  `json:"genre,omitempty"`
	Country        string  `json:"country,omitempty"`
	MoviePlot      string  `json:"moviePlot,omitempty"`
	AudienceRating string  `json:"audienceRating,omitempty"`
	MovieYear      int     `json:"movieYear"`
	RunningTime    string  `json:"runningTime,omitempty"`
	MovieRating    float64 `json:"movieRating"`
	MoviePosterURL string  `json:"moviePosterUrl,omitempty"`
	TrailerURL     string  `json:"trailerUrl,omitempty"`
	BackgroundURL  string  `json:"backgroundUrl,omitempty"`
	Actors         []Actor `json:"actors,omitempty"`
	Liked          bool    `json:"liked"`
}

type Review struct {
	ReviewSeq     int64   `json:"reviewSeq"`
	UserSeq       int64   `json:"userSeq"`
	Nickname      string  `json:"nickname,omitempty"`
	MovieSeq      int64   `json:"movieSeq"`
	ReviewRating  float64 `json:"reviewRating"`
	ReviewContent string  `json:"reviewContent"`
	IsSpoiler     bool    `json:"isSpoiler"`
	Likes         int     `json:"likes"`
	Liked         bool    `json:"liked"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	Top           bool    `json:"top"`
}

// UserMovieDetail is the user service's view of one movie for one user.
type UserMovieDetail struct {
	BookMarkedMovie bool     `json:"bookMarkedMovie"`
	UnlikedMovie    bool     `json:"unlikedMovie"`
	UnlikedMovies   []int64  `json:"unlikedMovies"`
	Reviews         []Review `json:"reviews"`
}

type MovieSummary struct {
	MovieSeq       int64  `json:"movieSeq"`
	MovieTitle     string `json:"movieTitle"`
	MoviePosterURL string `json:"moviePosterUrl,omitempty"`
	MovieYear      int    `json:"movieYear,omitempty"`
}

// UserAction is one recent interaction recorded by the catalog service.
type UserAction struct {
	UserSeq   int64  `json:"userSeq,omitempty"`
	MovieSeq  int64  `json:"movieSeq,omitempty"`
	Keyword   string `json:"keyword"`
	MovieYear int    `json:"movieYear"`
	Action    string `json:"action,omitempty"`
}

// RecommendByContentRequest is one seed for the content recommender. Unset
// fields are sent as null.
type RecommendByContentRequest struct {
	Keyword   *string `json:"keyword"`
	Year      *int    `json:"year"`
	ActorName *string `json:"actorName"`
}

// MovieSeqListRequest identifies a recommended movie by title and year; the
// catalog resolves it to a movie.
type MovieSeqListRequest struct {
	MovieTitle string `json:"movieTitle"`
	MovieYear  int    `json:"movieYear"`
}

type MovieListRequest struct {
	MovieSeqListRequests []MovieSeqListRequest `json:"movieSeqListRequests"`
	UnlikeMovieSeqs      []int64               `json:"unlikeMovieSeqs"`
}

// Composite payloads returned to clients.

type MovieDetailView struct {
	MovieDetail     MovieDetail    `json:"movieDetailResponse"`
	BookMarkedMovie bool           `json:"bookMarkedMovie"`
	UnlikedMovie    bool           `json:"unlikedMovie"`
	Reviews         []Review       `json:"reviews"`
	SimilarMovies   []MovieSummary `json:"similarMovies"`
}

type ActorRecommendationView struct {
	ActorName string         `json:"actorName"`
	Movies    []MovieSummary `json:"movies"`
}
