package body

// Default returns the eight-planet system with Earth's moon
func Default() *Registry {
	return &Registry{
		Star: Star{
			Name:        "Sun",
			Radius:      5,
			Color:       "#ffcc00",
			Description: "The star at the centre of the Solar System, a nearly perfect sphere of hot plasma.",
			Link:        "https://en.wikipedia.org/wiki/Sun",
		},
		Bodies: []CelestialBody{
			{
				Name: "Mercury", Radius: 2, Distance: 10, AngularSpeed: 0.01, Color: "#b5b5b5",
				Description: "The smallest planet and the closest to the Sun.",
				Link:        "https://en.wikipedia.org/wiki/Mercury_(planet)",
			},
			{
				Name: "Venus", Radius: 3, Distance: 20, AngularSpeed: 0.005, Color: "#e8cda2",
				Description: "The hottest planet, wrapped in a thick carbon dioxide atmosphere.",
				Link:        "https://en.wikipedia.org/wiki/Venus",
			},
			{
				Name: "Earth", Radius: 4, Distance: 30, AngularSpeed: 0.0025, Color: "#2e86ab",
				Description: "The third planet and the only known body to harbour life.",
				Link:        "https://en.wikipedia.org/wiki/Earth",
			},
			{
				Name: "Mars", Radius: 3, Distance: 40, AngularSpeed: 0.002, Color: "#c1440e",
				Description: "The red planet, home to Olympus Mons.",
				Link:        "https://en.wikipedia.org/wiki/Mars",
			},
			{
				Name: "Jupiter", Radius: 7, Distance: 50, AngularSpeed: 0.0015, Color: "#c88b3a",
				Description: "The largest planet, a gas giant with the Great Red Spot.",
				Link:        "https://en.wikipedia.org/wiki/Jupiter",
			},
			{
				Name: "Saturn", Radius: 6, Distance: 60, AngularSpeed: 0.0012, Color: "#e3c16f",
				Description: "A gas giant known for its extensive ring system.",
				Link:        "https://en.wikipedia.org/wiki/Saturn",
			},
			{
				Name: "Uranus", Radius: 5, Distance: 70, AngularSpeed: 0.0011, Color: "#9fe3e6",
				Description: "An ice giant that rotates on its side.",
				Link:        "https://en.wikipedia.org/wiki/Uranus",
			},
			{
				Name: "Neptune", Radius: 4, Distance: 80, AngularSpeed: 0.001, Color: "#4b70dd",
				Description: "The outermost planet, with the strongest winds in the Solar System.",
				Link:        "https://en.wikipedia.org/wiki/Neptune",
			},
		},
		Satellites: []SatelliteDef{
			{
				Name: "Moon", Parent: "Earth", Radius: 1, OffsetRadius: 5, PhaseFactor: 2, Color: "#aaaaaa",
				Description: "Earth's only natural satellite.",
				Link:        "https://en.wikipedia.org/wiki/Moon",
			},
		},
	}
}
