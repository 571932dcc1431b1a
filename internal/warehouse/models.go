package warehouse

import "time"

// Meeting is a race weekend. Key is the archive's natural key; mutable fields
// are overwritten on every discovery pass.
type Meeting struct {
	Key          int
	Year         int
	Round        int
	Name         string
	OfficialName *string
	Location     *string
	Country      *string
	Circuit      *string
}

// Session is one on-track segment of a meeting. IngestedAt nil means the
// session is discovered but not yet ingested.
type Session struct {
	Key        int
	MeetingKey int
	Type       string
	Name       string
	StartDate  *string
	EndDate    *string
	GmtOffset  *string
	Path       string
	TotalLaps  *int
	IngestedAt *time.Time
}

// SessionDriver is a driver's roster entry and final results for one session.
type SessionDriver struct {
	SessionKey          int
	DriverNumber        int
	Abbreviation        string
	FirstName           *string
	LastName            *string
	FullName            *string
	TeamName            *string
	TeamColor           *string
	HeadshotURL         *string
	CountryCode         *string
	GridPosition        *int
	FinalPosition       *int
	Status              *string
	Points              *float64
	BestLapTime         *string
	BestLapTimeSeconds  *float64
	BestLapNumber       *int
	BestSector1         *string
	BestSector1Seconds  *float64
	BestSector2         *string
	BestSector2Seconds  *float64
	BestSector3         *string
	BestSector3Seconds  *float64
	SpeedTrapBest       *float64
	Sector1SpeedBest    *float64
	Sector2SpeedBest    *float64
	FinishLineSpeedBest *float64
	PitCount            *int
}

// LapPosition is the running position of a driver after one lap.
type LapPosition struct {
	SessionKey   int
	DriverNumber int
	LapNumber    int
	Position     int
}

// Stint is one tire stint. StartLap/EndLap are derived from the cumulative
// per-stint lap counts.
type Stint struct {
	SessionKey      int
	DriverNumber    int
	StintNumber     int
	Compound        *string
	IsNew           *bool
	TyresNotChanged *bool
	TotalLaps       *int
	StartLap        *int
	EndLap          *int
}

// PitStop is one pit stop; StopNumber follows source array order.
type PitStop struct {
	SessionKey            int
	DriverNumber          int
	LapNumber             int
	StopNumber            *int
	PitLaneTime           *string
	PitLaneTimeSeconds    *float64
	StationaryTime        *string
	StationaryTimeSeconds *float64
}

// RaceControlMessage is a timestamped control-room message.
type RaceControlMessage struct {
	SessionKey   int
	Utc          *string
	LapNumber    *int
	Category     *string
	Flag         *string
	Scope        *string
	Sector       *int
	DriverNumber *int
	Message      string
}

// WeatherSample is a timestamped environmental reading.
type WeatherSample struct {
	SessionKey    int
	Utc           *string
	AirTemp       *float64
	TrackTemp     *float64
	Humidity      *float64
	Pressure      *float64
	Rainfall      *bool
	WindDirection *int
	WindSpeed     *float64
}

// SessionStatusEvent is one track-status or session-status transition.
type SessionStatusEvent struct {
	SessionKey int
	Utc        *string
	Type       string
	Status     string
	Message    *string
}

// Status event type tags.
const (
	StatusTypeTrack   = "TrackStatus"
	StatusTypeSession = "SessionStatus"
)

// SessionData bundles every child row set written for one session.
type SessionData struct {
	Drivers      []SessionDriver
	LapPositions []LapPosition
	Stints       []Stint
	PitStops     []PitStop
	RaceControl  []RaceControlMessage
	Weather      []WeatherSample
	StatusEvents []SessionStatusEvent
	TotalLaps    *int
}

// RowCount reports the number of child rows in the bundle.
func (d SessionData) RowCount() int {
	return len(d.Drivers) + len(d.LapPositions) + len(d.Stints) + len(d.PitStops) +
		len(d.RaceControl) + len(d.Weather) + len(d.StatusEvents)
}

// SessionSummary is a read-model row for CLI listings.
type SessionSummary struct {
	MeetingName string
	SessionName string
	Type        string
	StartDate   *string
	TotalLaps   *int
	IngestedAt  *time.Time
}
