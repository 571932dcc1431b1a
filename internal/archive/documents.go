package archive

// Per-session document names published by the archive.
const (
	DocDriverList          = "DriverList.json"
	DocTimingStats         = "TimingStats.json"
	DocTimingAppData       = "TimingAppData.json"
	DocTimingData          = "TimingDataF1.json"
	DocLapSeries           = "LapSeries.json"
	DocPitStopSeries       = "PitStopSeries.json"
	DocRaceControlMessages = "RaceControlMessages.json"
	DocWeatherSeries       = "WeatherDataSeries.json"
	DocSessionData         = "SessionData.json"
	DocLapCount            = "LapCount.json"
)

// RawSeasonIndex is the season-level index of meetings and sessions.
type RawSeasonIndex struct {
	Year     int          `json:"Year"`
	Meetings []RawMeeting `json:"Meetings"`
}

// RawMeeting describes one race weekend in the season index.
type RawMeeting struct {
	Key          int          `json:"Key"`
	Code         string       `json:"Code"`
	Number       int          `json:"Number"`
	Location     string       `json:"Location"`
	OfficialName string       `json:"OfficialName"`
	Name         string       `json:"Name"`
	Country      RawCountry   `json:"Country"`
	Circuit      RawCircuit   `json:"Circuit"`
	Sessions     []RawSession `json:"Sessions"`
}

type RawCountry struct {
	Key  int    `json:"Key"`
	Code string `json:"Code"`
	Name string `json:"Name"`
}

type RawCircuit struct {
	Key       int    `json:"Key"`
	ShortName string `json:"ShortName"`
}

// RawSession describes one on-track segment in the season index. Number is 1-3
// for practice sessions and -1 when a Qualifying/Race entry is actually a
// sprint-format session.
type RawSession struct {
	Key       int    `json:"Key"`
	Type      string `json:"Type"`
	Number    int    `json:"Number"`
	Name      string `json:"Name"`
	StartDate string `json:"StartDate"`
	EndDate   string `json:"EndDate"`
	GmtOffset string `json:"GmtOffset"`
	Path      string `json:"Path"`
}

// RawDriverList is the session roster, keyed by racing number.
type RawDriverList map[string]RawDriver

type RawDriver struct {
	RacingNumber  string `json:"RacingNumber"`
	BroadcastName string `json:"BroadcastName"`
	FullName      string `json:"FullName"`
	Tla           string `json:"Tla"`
	Line          int    `json:"Line"`
	TeamName      string `json:"TeamName"`
	TeamColour    string `json:"TeamColour"`
	FirstName     string `json:"FirstName"`
	LastName      string `json:"LastName"`
	Reference     string `json:"Reference"`
	HeadshotURL   string `json:"HeadshotUrl"`
	CountryCode   string `json:"CountryCode"`
}

// RawTimingStats carries the best lap/sector/speed statistics per driver.
type RawTimingStats struct {
	Withheld bool                            `json:"Withheld"`
	Lines    map[string]RawTimingStatsDriver `json:"Lines"`
}

type RawTimingStatsDriver struct {
	Line                int            `json:"Line"`
	RacingNumber        string         `json:"RacingNumber"`
	PersonalBestLapTime RawBestLap     `json:"PersonalBestLapTime"`
	BestSectors         []RawBestValue `json:"BestSectors"`
	BestSpeeds          RawBestSpeeds  `json:"BestSpeeds"`
}

type RawBestLap struct {
	Lap      *int   `json:"Lap"`
	Position int    `json:"Position"`
	Value    string `json:"Value"`
}

type RawBestValue struct {
	Position int    `json:"Position"`
	Value    string `json:"Value"`
}

type RawBestSpeeds struct {
	I1 RawBestValue `json:"I1"`
	I2 RawBestValue `json:"I2"`
	FL RawBestValue `json:"FL"`
	ST RawBestValue `json:"ST"`
}

// RawTimingAppData carries stints and grid positions per driver.
type RawTimingAppData struct {
	Lines map[string]RawTimingAppDriver `json:"Lines"`
}

type RawTimingAppDriver struct {
	RacingNumber string     `json:"RacingNumber"`
	Line         int        `json:"Line"`
	GridPos      string     `json:"GridPos"`
	Stints       []RawStint `json:"Stints"`
}

type RawStint struct {
	LapTime         string `json:"LapTime"`
	LapNumber       int    `json:"LapNumber"`
	LapFlags        int    `json:"LapFlags"`
	Compound        string `json:"Compound"`
	New             string `json:"New"`
	TyresNotChanged string `json:"TyresNotChanged"`
	TotalLaps       *int   `json:"TotalLaps"`
	StartLaps       int    `json:"StartLaps"`
}

// RawTimingData is the final timing document: positions, gaps, pit counts,
// retired/stopped flags.
type RawTimingData struct {
	Lines map[string]RawTimingDriver `json:"Lines"`
}

type RawTimingDriver struct {
	Line             int    `json:"Line"`
	Position         string `json:"Position"`
	RacingNumber     string `json:"RacingNumber"`
	Retired          bool   `json:"Retired"`
	InPit            bool   `json:"InPit"`
	PitOut           bool   `json:"PitOut"`
	Stopped          bool   `json:"Stopped"`
	Status           int    `json:"Status"`
	NumberOfLaps     int    `json:"NumberOfLaps"`
	NumberOfPitStops *int   `json:"NumberOfPitStops"`
}

// RawLapSeries maps racing number to the per-lap running position series.
type RawLapSeries map[string]RawLapSeriesDriver

type RawLapSeriesDriver struct {
	RacingNumber string   `json:"RacingNumber"`
	LapPosition  []string `json:"LapPosition"`
}

// RawPitStopSeries lists pit stop timings per driver in pit-entry order.
type RawPitStopSeries struct {
	PitTimes map[string][]RawPitStopEntry `json:"PitTimes"`
}

type RawPitStopEntry struct {
	Timestamp string     `json:"Timestamp"`
	PitStop   RawPitStop `json:"PitStop"`
}

type RawPitStop struct {
	RacingNumber string `json:"RacingNumber"`
	PitStopTime  string `json:"PitStopTime"`
	PitLaneTime  string `json:"PitLaneTime"`
	Lap          string `json:"Lap"`
}

// RawRaceControlMessages is the control-room message log.
type RawRaceControlMessages struct {
	Messages []RawRaceControlMessage `json:"Messages"`
}

type RawRaceControlMessage struct {
	Utc          string `json:"Utc"`
	Lap          *int   `json:"Lap"`
	Category     string `json:"Category"`
	Flag         string `json:"Flag"`
	Status       string `json:"Status"`
	Mode         string `json:"Mode"`
	Scope        string `json:"Scope"`
	Sector       *int   `json:"Sector"`
	RacingNumber string `json:"RacingNumber"`
	Message      string `json:"Message"`
}

// RawWeatherSeries is the environmental sample series.
type RawWeatherSeries struct {
	Series []RawWeatherEntry `json:"Series"`
}

type RawWeatherEntry struct {
	Timestamp string     `json:"Timestamp"`
	Weather   RawWeather `json:"Weather"`
}

type RawWeather struct {
	AirTemp       string `json:"AirTemp"`
	Humidity      string `json:"Humidity"`
	Pressure      string `json:"Pressure"`
	Rainfall      string `json:"Rainfall"`
	TrackTemp     string `json:"TrackTemp"`
	WindDirection string `json:"WindDirection"`
	WindSpeed     string `json:"WindSpeed"`
}

// RawSessionData carries the lap timing series and the status timeline. Each
// status entry populates exactly one of TrackStatus or SessionStatus.
type RawSessionData struct {
	Series       []RawLapSeriesEntry `json:"Series"`
	StatusSeries []RawStatusEntry    `json:"StatusSeries"`
}

type RawLapSeriesEntry struct {
	Utc string `json:"Utc"`
	Lap int    `json:"Lap"`
}

type RawStatusEntry struct {
	Utc           string `json:"Utc"`
	TrackStatus   string `json:"TrackStatus"`
	SessionStatus string `json:"SessionStatus"`
}

// RawLapCount reports the session's total lap count.
type RawLapCount struct {
	CurrentLap int  `json:"CurrentLap"`
	TotalLaps  *int `json:"TotalLaps"`
}
