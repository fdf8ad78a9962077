package profile

// Link is a labelled external URL shown on the page.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Job is one position in the work history.
type Job struct {
	Title      string   `json:"title" yaml:"title"`
	Company    string   `json:"company" yaml:"company"`
	Period     string   `json:"period" yaml:"period"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights"`
}

// Document is a downloadable asset addressed by a stable name.
type Document struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
	File  string `json:"file" yaml:"file"`
	MIME  string `json:"mime" yaml:"mime"`
}

// Profile captures everything rendered on the résumé page plus the
// background the assistant is allowed to talk about.
type Profile struct {
	Name        string     `json:"name" yaml:"name"`
	PageTitle   string     `json:"pageTitle" yaml:"page_title"`
	Description string     `json:"description" yaml:"description"`
	Email       string     `json:"email" yaml:"email"`
	Image       string     `json:"image,omitempty" yaml:"image"` // document name of the portrait
	Social      []Link     `json:"social,omitempty" yaml:"social"`
	Projects    []Link     `json:"projects,omitempty" yaml:"projects"`
	Experience  []string   `json:"experience,omitempty" yaml:"experience"`
	Skills      []string   `json:"skills,omitempty" yaml:"skills"`
	Jobs        []Job      `json:"jobs,omitempty" yaml:"jobs"`
	Documents   []Document `json:"documents,omitempty" yaml:"documents"`

	AssistantName      string   `json:"assistantName" yaml:"assistant_name"`
	AssistantBrief     string   `json:"-" yaml:"assistant_brief"`
	SuggestedQuestions []string `json:"suggestedQuestions,omitempty" yaml:"suggested_questions"`
}

// DocumentPath is where the page serves a document by name.
func DocumentPath(name string) string {
	return "/documents/" + name
}

// FindDocument looks up a document by its stable name.
func (p Profile) FindDocument(name string) (Document, bool) {
	for _, doc := range p.Documents {
		if doc.Name == name {
			return doc, true
		}
	}
	return Document{}, false
}

// Seed provides the built-in résumé used when no profile file is configured.
func Seed() Profile {
	return Profile{
		Name:        "Albert Shilling",
		PageTitle:   "Resume | Albert Shilling",
		Description: "B.S. Data Science & Analytics, assisting enterprises by supporting data-driven decision making.",
		Email:       "albertshilling1225@gmail.com",
		Image:       "profile-image",
		Social: []Link{
			{Label: "Github", URL: "https://github.com/chasingbytes"},
			{Label: "LinkedIn", URL: "https://linkedin.com/in/albertshilling"},
		},
		Projects: []Link{
			{Label: "Rising Tide Car Wash daily customer predictor", URL: "https://risingtide-predictor.streamlit.app/"},
		},
		Experience: []string{
			"Developed and implemented a predictive model for Rising Tide Car Wash to forecast daily customer traffic using 3 years of historical data, currently used in operations at the Parkland location. Version 2.0 is in production and will support all three locations.",
			"Built an automated email response system using a customized GPT model integrated with the Gmail API",
			"Experience in data mining, neural networks, machine learning classifiers, and predictive statistical programming",
			"Proficient in Python, C++, SQL, and Excel; strong hands-on learner",
			"Team-oriented with a strong sense of initiative and independent problem-solving ability",
		},
		Skills: []string{
			"Programming: Python (Scikit-learn, PyTorch, Keras, TensorFlow, Pandas, NumPy), SQL, C++",
			"Data Visualization: Streamlit, Matplotlib, Seaborn, MS Excel",
			"Modeling & Machine Learning: XGBoost, Logistic Regression, Decision Trees, LSTM Neural Networks, Kaplan-Meier Survival Analysis",
			"Experienced with key tools and frameworks including Streamlit for web app development and XGBoost for model training and optimization",
		},
		Jobs: []Job{
			{
				Title:   "Operations Analyst",
				Company: "Rising Tide Car Wash",
				Period:  "01/2025 - Present",
				Highlights: []string{
					"Supporting operations and innovation, combining programming skills with hands-on leadership to improve efficiency and decision-making.",
					"Built predictive web apps to forecast customer traffic and automated customer email responses using GPT.",
					"Exploring how data and tech can transform operations, especially in small business environments.",
				},
			},
			{
				Title:   "Operations Manager",
				Company: "Rising Tide Car Wash",
				Period:  "08/2021 - Present",
				Highlights: []string{
					"Working alongside the Site Manager with daily operations including staff scheduling, customer service, and team relations",
					"Ensure mechanical systems are operating efficiently and coordinate routine maintenance",
					"Troubleshoot technical issues related to point-of-sale systems and automated entry equipment",
					"Support a high-functioning, inclusive work environment and uphold service quality standards",
				},
			},
		},
		Documents: []Document{
			{Name: "resume", Label: "Download Resume", File: "Resume2025.pdf", MIME: "application/octet-stream"},
			{Name: "capstone", Label: "Decision Trees vs. Neural Networks: Which one for predictions?", File: "CAPSTONE_report.pdf", MIME: "application/pdf"},
			{Name: "profile-image", Label: "Profile picture", File: "profile-pic.png", MIME: "image/png"},
		},
		AssistantName: "Albert's Resume Assistant",
		AssistantBrief: `Albert is a recent graduate from Florida Atlantic University with a B.S. in Data Science & Analytics.
He specializes in machine learning, Python, XGBoost, LSTMs, and Streamlit.
He built a car wash predictor using 3 years of weather data and deployed it via Streamlit, with version 1.0 used by the Parkland location at Rising Tide Car Wash. Version 2.0 is being built to support operations company-wide across all three stores. A full report on this work is available for download from the resume page, titled "Decision Trees vs Neural Networks: Which one for predictions".
He also automated customer support emails using GPT and the Gmail API while working as Rising Tide Car Wash's Operations Analyst.`,
		SuggestedQuestions: []string{
			"What are your top skills?",
			"What was your capstone?",
			"Any experience with Machine Learning?",
		},
	}
}
