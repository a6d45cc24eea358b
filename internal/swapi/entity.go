package swapi

import "fmt"

// Fact is one labelled value shown on an entity card.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Entity is the read-only view every upstream record offers to renderers.
type Entity interface {
	// Identifier returns the record's url, its cache key and foreign key.
	Identifier() string
	Heading() string
	Subheading() string
	Facts() []Fact
}

// Compile-time checks.
var (
	_ Entity = Person{}
	_ Entity = Film{}
	_ Entity = Planet{}
	_ Entity = Starship{}
	_ Entity = Vehicle{}
)

// Person is a character record from /people.
type Person struct {
	Name      string   `json:"name"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	HairColor string   `json:"hair_color"`
	SkinColor string   `json:"skin_color"`
	EyeColor  string   `json:"eye_color"`
	BirthYear string   `json:"birth_year"`
	Gender    string   `json:"gender"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Vehicles  []string `json:"vehicles"`
	Starships []string `json:"starships"`
	Created   string   `json:"created"`
	Edited    string   `json:"edited"`
	URL       string   `json:"url"`
}

func (p Person) Identifier() string { return p.URL }
func (p Person) Heading() string    { return p.Name }

func (p Person) Subheading() string {
	return joinNonEmpty(p.Gender, p.BirthYear)
}

func (p Person) Facts() []Fact {
	return []Fact{
		{Label: "Height", Value: withUnit(p.Height, " cm")},
		{Label: "Mass", Value: withUnit(p.Mass, " kg")},
		{Label: "Hair Color", Value: p.HairColor},
		{Label: "Eye Color", Value: p.EyeColor},
	}
}

// Film is a film record from /films.
type Film struct {
	Title        string   `json:"title"`
	EpisodeID    int      `json:"episode_id"`
	OpeningCrawl string   `json:"opening_crawl"`
	Director     string   `json:"director"`
	Producer     string   `json:"producer"`
	ReleaseDate  string   `json:"release_date"`
	Characters   []string `json:"characters"`
	Planets      []string `json:"planets"`
	Starships    []string `json:"starships"`
	Vehicles     []string `json:"vehicles"`
	Species      []string `json:"species"`
	Created      string   `json:"created"`
	Edited       string   `json:"edited"`
	URL          string   `json:"url"`
}

func (f Film) Identifier() string { return f.URL }

func (f Film) Heading() string {
	return fmt.Sprintf("Episode %d: %s", f.EpisodeID, f.Title)
}

func (f Film) Subheading() string { return f.ReleaseDate }

func (f Film) Facts() []Fact {
	facts := []Fact{
		{Label: "Director", Value: f.Director},
		{Label: "Producer", Value: f.Producer},
	}
	if f.OpeningCrawl != "" {
		facts = append(facts, Fact{Label: "Opening Crawl", Value: f.OpeningCrawl})
	}
	return facts
}

// Planet is a planet record from /planets.
type Planet struct {
	Name           string   `json:"name"`
	RotationPeriod string   `json:"rotation_period"`
	OrbitalPeriod  string   `json:"orbital_period"`
	Diameter       string   `json:"diameter"`
	Climate        string   `json:"climate"`
	Gravity        string   `json:"gravity"`
	Terrain        string   `json:"terrain"`
	SurfaceWater   string   `json:"surface_water"`
	Population     string   `json:"population"`
	Residents      []string `json:"residents"`
	Films          []string `json:"films"`
	Created        string   `json:"created"`
	Edited         string   `json:"edited"`
	URL            string   `json:"url"`
}

func (p Planet) Identifier() string { return p.URL }
func (p Planet) Heading() string    { return p.Name }

func (p Planet) Subheading() string {
	return joinNonEmpty(p.Climate, p.Terrain)
}

func (p Planet) Facts() []Fact {
	return []Fact{
		{Label: "Diameter", Value: withUnit(p.Diameter, " km")},
		{Label: "Population", Value: p.Population},
		{Label: "Rotation Period", Value: withUnit(p.RotationPeriod, " hours")},
		{Label: "Orbital Period", Value: withUnit(p.OrbitalPeriod, " days")},
	}
}

// Starship is a starship record from /starships.
type Starship struct {
	Name                 string   `json:"name"`
	Model                string   `json:"model"`
	Manufacturer         string   `json:"manufacturer"`
	CostInCredits        string   `json:"cost_in_credits"`
	Length               string   `json:"length"`
	MaxAtmospheringSpeed string   `json:"max_atmosphering_speed"`
	Crew                 string   `json:"crew"`
	Passengers           string   `json:"passengers"`
	CargoCapacity        string   `json:"cargo_capacity"`
	Consumables          string   `json:"consumables"`
	HyperdriveRating     string   `json:"hyperdrive_rating"`
	MGLT                 string   `json:"MGLT"`
	StarshipClass        string   `json:"starship_class"`
	Pilots               []string `json:"pilots"`
	Films                []string `json:"films"`
	Created              string   `json:"created"`
	Edited               string   `json:"edited"`
	URL                  string   `json:"url"`
}

func (s Starship) Identifier() string { return s.URL }
func (s Starship) Heading() string    { return s.Name }
func (s Starship) Subheading() string { return s.StarshipClass }

func (s Starship) Facts() []Fact {
	return []Fact{
		{Label: "Model", Value: s.Model},
		{Label: "Manufacturer", Value: s.Manufacturer},
		{Label: "Cost", Value: withUnit(s.CostInCredits, " credits")},
		{Label: "Length", Value: withUnit(s.Length, "m")},
	}
}

// Vehicle is a vehicle record from /vehicles.
type Vehicle struct {
	Name                 string   `json:"name"`
	Model                string   `json:"model"`
	Manufacturer         string   `json:"manufacturer"`
	CostInCredits        string   `json:"cost_in_credits"`
	Length               string   `json:"length"`
	MaxAtmospheringSpeed string   `json:"max_atmosphering_speed"`
	Crew                 string   `json:"crew"`
	Passengers           string   `json:"passengers"`
	CargoCapacity        string   `json:"cargo_capacity"`
	Consumables          string   `json:"consumables"`
	VehicleClass         string   `json:"vehicle_class"`
	Pilots               []string `json:"pilots"`
	Films                []string `json:"films"`
	Created              string   `json:"created"`
	Edited               string   `json:"edited"`
	URL                  string   `json:"url"`
}

func (v Vehicle) Identifier() string { return v.URL }
func (v Vehicle) Heading() string    { return v.Name }
func (v Vehicle) Subheading() string { return v.VehicleClass }

func (v Vehicle) Facts() []Fact {
	return []Fact{
		{Label: "Model", Value: v.Model},
		{Label: "Manufacturer", Value: v.Manufacturer},
		{Label: "Cost", Value: withUnit(v.CostInCredits, " credits")},
		{Label: "Max Speed", Value: withUnit(v.MaxAtmospheringSpeed, " km/h")},
	}
}

// withUnit appends unit to a measured value, mapping the upstream
// "unknown" sentinel (and empty values) to "Unknown".
func withUnit(value, unit string) string {
	if value == "" || value == "unknown" {
		return "Unknown"
	}
	return value + unit
}

// joinNonEmpty joins the non-empty parts with a bullet separator.
func joinNonEmpty(parts ...string) string {
	var out string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " • "
		}
		out += p
	}
	return out
}
