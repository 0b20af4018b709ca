package catalog

// Course is one offered course. Entries are reference data and are never
// modified by the form.
type Course struct {
	ID          string  `json:"id"`
	CourseName  string  `json:"courseName"`
	CoursePrice float64 `json:"coursePrice"`
}

// Catalog is an immutable, name-indexed list of courses.
type Catalog struct {
	courses []Course
	byName  map[string]Course
}

var defaultCourses = []Course{
	{ID: "1", CourseName: "Full Stack Web Development", CoursePrice: 45000},
	{ID: "2", CourseName: "Data Science & ML", CoursePrice: 55000},
	{ID: "3", CourseName: "Frontend with React", CoursePrice: 30000},
	{ID: "4", CourseName: "Backend with Node.js", CoursePrice: 35000},
	{ID: "5", CourseName: "Java Backend", CoursePrice: 40000},
}

// New copies courses into a Catalog. When two entries share a name the
// first one wins.
func New(courses []Course) Catalog {
	c := Catalog{
		courses: make([]Course, 0, len(courses)),
		byName:  make(map[string]Course, len(courses)),
	}

	for _, course := range courses {
		if _, dup := c.byName[course.CourseName]; dup {
			continue
		}
		c.courses = append(c.courses, course)
		c.byName[course.CourseName] = course
	}

	return c
}

func Default() Catalog {
	return New(defaultCourses)
}

func (c Catalog) Courses() []Course {
	out := make([]Course, len(c.courses))
	copy(out, c.courses)
	return out
}

func (c Catalog) Lookup(name string) (Course, bool) {
	course, ok := c.byName[name]
	return course, ok
}

func (c Catalog) Len() int {
	return len(c.courses)
}
