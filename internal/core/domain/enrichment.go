package domain

// ExternalCredit is a crew or cast entry reported by the metadata service.
type ExternalCredit struct {
	Name        string
	TMDBID      int
	Job         string
	Character   string
	ProfilePath string
}

// RealTimeData is the live view of a movie fetched from the metadata service.
type RealTimeData struct {
	Director     *ExternalCredit
	Cast         []ExternalCredit
	PosterPath   string
	BackdropPath string
	VoteAverage  float64
	VoteCount    int
}

// Enrichment is the tagged outcome of a metadata lookup: either Found with
// RealTime populated, or not found with an optional diagnostic Note.
type Enrichment struct {
	Found    bool
	TMDBID   int
	RealTime *RealTimeData
	Note     string
}

// EnrichmentFound builds a successful lookup result.
func EnrichmentFound(tmdbID int, data RealTimeData) Enrichment {
	return Enrichment{Found: true, TMDBID: tmdbID, RealTime: &data}
}

// EnrichmentMissing builds a lookup result that carries no external data.
// note is empty when the lookup simply had no match.
func EnrichmentMissing(note string) Enrichment {
	return Enrichment{Note: note}
}

// EnrichedMovie pairs the stored movie with the external view. The stored
// fields are never overwritten by external data.
type EnrichedMovie struct {
	MovieDetail
	Enrichment
}

// Merge attaches an enrichment outcome to a stored movie.
func Merge(stored MovieDetail, e Enrichment) EnrichedMovie {
	if !e.Found {
		e.RealTime = nil
		e.TMDBID = 0
	}
	return EnrichedMovie{MovieDetail: stored, Enrichment: e}
}
