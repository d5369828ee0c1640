package catalog

// Physical values follow the NASA planetary fact sheets. Orbit values only drive the 3D scene:
// radius is in scene units and speed in radians per second, both picked for display.

var planets = []Planet{
	{
		Slug: "mercury", Name: "Mercury", Type: PlanetTypeTerrestrial,
		Mass: 0.330, Radius: 2439.7, Gravity: 3.7, DistanceFromSun: 57.9,
		OrbitalPeriod: 88.0, DayLength: 4222.6, MeanTemperature: 167, MoonCount: 0,
		Description: "The smallest planet and the closest to the Sun, with a heavily cratered surface and almost no atmosphere.",
		Image:       "/images/planets/mercury.jpg",
		Orbit:       Orbit{Radius: 8, Speed: 0.47},
	},
	{
		Slug: "venus", Name: "Venus", Type: PlanetTypeTerrestrial,
		Mass: 4.87, Radius: 6051.8, Gravity: 8.9, DistanceFromSun: 108.2,
		OrbitalPeriod: 224.7, DayLength: 2802.0, MeanTemperature: 464, MoonCount: 0,
		Description: "The hottest planet, wrapped in thick clouds of sulfuric acid over a runaway greenhouse atmosphere.",
		Image:       "/images/planets/venus.jpg",
		Orbit:       Orbit{Radius: 11, Speed: 0.35},
	},
	{
		Slug: "earth", Name: "Earth", Type: PlanetTypeTerrestrial,
		Mass: 5.97, Radius: 6371.0, Gravity: 9.81, DistanceFromSun: 149.6,
		OrbitalPeriod: 365.2, DayLength: 24.0, MeanTemperature: 15, MoonCount: 1,
		Description: "Our home, the only known world with liquid water on its surface and life.",
		Image:       "/images/planets/earth.jpg",
		Orbit:       Orbit{Radius: 15, Speed: 0.30},
	},
	{
		Slug: "mars", Name: "Mars", Type: PlanetTypeTerrestrial,
		Mass: 0.642, Radius: 3389.5, Gravity: 3.7, DistanceFromSun: 228.0,
		OrbitalPeriod: 687.0, DayLength: 24.7, MeanTemperature: -65, MoonCount: 2,
		Description: "The red planet, a cold desert world with the tallest volcano in the Solar System.",
		Image:       "/images/planets/mars.jpg",
		Orbit:       Orbit{Radius: 19, Speed: 0.24},
	},
	{
		Slug: "jupiter", Name: "Jupiter", Type: PlanetTypeGasGiant,
		Mass: 1898, Radius: 69911, Gravity: 23.1, DistanceFromSun: 778.5,
		OrbitalPeriod: 4331, DayLength: 9.9, MeanTemperature: -110, MoonCount: 95,
		Description: "The largest planet, a gas giant whose Great Red Spot is a storm bigger than Earth.",
		Image:       "/images/planets/jupiter.jpg",
		Orbit:       Orbit{Radius: 28, Speed: 0.13},
	},
	{
		Slug: "saturn", Name: "Saturn", Type: PlanetTypeGasGiant,
		Mass: 568, Radius: 58232, Gravity: 9.0, DistanceFromSun: 1432.0,
		OrbitalPeriod: 10747, DayLength: 10.7, MeanTemperature: -140, MoonCount: 146,
		Description: "A gas giant known for its bright ring system made of ice and rock.",
		Image:       "/images/planets/saturn.jpg",
		Orbit:       Orbit{Radius: 38, Speed: 0.097},
	},
	{
		Slug: "uranus", Name: "Uranus", Type: PlanetTypeIceGiant,
		Mass: 86.8, Radius: 25362, Gravity: 8.7, DistanceFromSun: 2867.0,
		OrbitalPeriod: 30589, DayLength: 17.2, MeanTemperature: -195, MoonCount: 28,
		Description: "An ice giant that rotates on its side, tilted by almost 98 degrees.",
		Image:       "/images/planets/uranus.jpg",
		Orbit:       Orbit{Radius: 47, Speed: 0.068},
	},
	{
		Slug: "neptune", Name: "Neptune", Type: PlanetTypeIceGiant,
		Mass: 102, Radius: 24622, Gravity: 11.0, DistanceFromSun: 4515.0,
		OrbitalPeriod: 59800, DayLength: 16.1, MeanTemperature: -200, MoonCount: 16,
		Description: "The farthest planet, a dark and windy ice giant with supersonic storms.",
		Image:       "/images/planets/neptune.jpg",
		Orbit:       Orbit{Radius: 55, Speed: 0.054},
	},
}

var moons = []Moon{
	{Slug: "moon", Name: "Moon", Planet: "earth", Radius: 1737.4, OrbitalPeriod: 27.3,
		Description: "Earth's only natural satellite, responsible for most of the tides.",
		Orbit:       Orbit{Radius: 1.6, Speed: 1.2}},
	{Slug: "phobos", Name: "Phobos", Planet: "mars", Radius: 11.3, OrbitalPeriod: 0.32,
		Description: "The larger moon of Mars, slowly spiralling inward.",
		Orbit:       Orbit{Radius: 1.1, Speed: 2.4}},
	{Slug: "deimos", Name: "Deimos", Planet: "mars", Radius: 6.2, OrbitalPeriod: 1.26,
		Description: "The small outer moon of Mars.",
		Orbit:       Orbit{Radius: 1.5, Speed: 1.6}},
	{Slug: "io", Name: "Io", Planet: "jupiter", Radius: 1821.6, OrbitalPeriod: 1.77,
		Description: "The most volcanically active body in the Solar System.",
		Orbit:       Orbit{Radius: 2.4, Speed: 1.8}},
	{Slug: "europa", Name: "Europa", Planet: "jupiter", Radius: 1560.8, OrbitalPeriod: 3.55,
		Description: "An icy moon hiding a global salt-water ocean.",
		Orbit:       Orbit{Radius: 3.0, Speed: 1.3}},
	{Slug: "ganymede", Name: "Ganymede", Planet: "jupiter", Radius: 2634.1, OrbitalPeriod: 7.15,
		Description: "The largest moon in the Solar System, bigger than Mercury.",
		Orbit:       Orbit{Radius: 3.6, Speed: 0.9}},
	{Slug: "callisto", Name: "Callisto", Planet: "jupiter", Radius: 2410.3, OrbitalPeriod: 16.69,
		Description: "A heavily cratered moon with one of the oldest surfaces known.",
		Orbit:       Orbit{Radius: 4.2, Speed: 0.6}},
	{Slug: "titan", Name: "Titan", Planet: "saturn", Radius: 2574.7, OrbitalPeriod: 15.95,
		Description: "Saturn's largest moon, with a thick nitrogen atmosphere and methane lakes.",
		Orbit:       Orbit{Radius: 3.4, Speed: 0.7}},
	{Slug: "enceladus", Name: "Enceladus", Planet: "saturn", Radius: 252.1, OrbitalPeriod: 1.37,
		Description: "A bright icy moon venting water plumes from its south pole.",
		Orbit:       Orbit{Radius: 2.6, Speed: 1.5}},
	{Slug: "titania", Name: "Titania", Planet: "uranus", Radius: 788.4, OrbitalPeriod: 8.71,
		Description: "The largest moon of Uranus, marked by huge canyons.",
		Orbit:       Orbit{Radius: 2.2, Speed: 0.9}},
	{Slug: "triton", Name: "Triton", Planet: "neptune", Radius: 1353.4, OrbitalPeriod: 5.88,
		Description: "Neptune's largest moon, orbiting backwards and likely a captured Kuiper belt object.",
		Orbit:       Orbit{Radius: 2.2, Speed: -1.0}},
}

var asteroids = []Asteroid{
	{Slug: "ceres", Name: "Ceres", Radius: 469.7, DistanceFromSun: 413.7, OrbitalPeriod: 1682,
		Description: "The largest object in the asteroid belt, classified as a dwarf planet.",
		Orbit:       Orbit{Radius: 23.5, Speed: 0.18}},
	{Slug: "vesta", Name: "Vesta", Radius: 262.7, DistanceFromSun: 353.3, OrbitalPeriod: 1325,
		Description: "The brightest asteroid visible from Earth, with a giant impact basin.",
		Orbit:       Orbit{Radius: 22.5, Speed: 0.19}},
	{Slug: "pallas", Name: "Pallas", Radius: 256.0, DistanceFromSun: 414.5, OrbitalPeriod: 1686,
		Description: "A large asteroid on a steeply inclined orbit.",
		Orbit:       Orbit{Radius: 24.0, Speed: 0.17}},
	{Slug: "hygiea", Name: "Hygiea", Radius: 217.0, DistanceFromSun: 470.3, OrbitalPeriod: 2031,
		Description: "The fourth largest asteroid, nearly round in shape.",
		Orbit:       Orbit{Radius: 25.0, Speed: 0.16}},
}
