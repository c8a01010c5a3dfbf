package generation

// GenericResume is returned when input is rejected by the safety filter or
// the model refuses. It carries placeholder content only.
func GenericResume(lang Lang) Resume {
	if lang == LangFrench {
		return Resume{
			Name:    "Votre nom",
			Title:   "Intitulé du poste",
			Summary: "Professionnel motivé avec une expérience variée. Décrivez votre parcours pour obtenir un CV personnalisé.",
			Contact: Contact{
				Email:    "email@exemple.com",
				Phone:    "+33 6 00 00 00 00",
				Location: "Ville, Pays",
			},
			Experience: []ExperienceRow{{
				Title:   "Intitulé du poste",
				Company: "Nom de l'entreprise",
				Period:  "Début - Fin",
				Bullets: []string{
					"Décrivez une réalisation clé avec un résultat mesurable",
					"Décrivez une responsabilité principale",
					"Décrivez un projet dont vous êtes fier",
				},
			}},
			Education: []EducationRow{{
				Degree:      "Diplôme",
				Institution: "Établissement",
				Period:      "Début - Fin",
			}},
			Skills:    []string{"Compétence 1", "Compétence 2", "Compétence 3"},
			Languages: []string{"Français", "Anglais"},
		}
	}
	return Resume{
		Name:    "Your Name",
		Title:   "Job Title",
		Summary: "Motivated professional with diverse experience. Describe your background to get a tailored resume.",
		Contact: Contact{
			Email:    "email@example.com",
			Phone:    "+1 555 000 0000",
			Location: "City, Country",
		},
		Experience: []ExperienceRow{{
			Title:   "Job Title",
			Company: "Company Name",
			Period:  "Start - End",
			Bullets: []string{
				"Describe a key achievement with a measurable result",
				"Describe a core responsibility",
				"Describe a project you are proud of",
			},
		}},
		Education: []EducationRow{{
			Degree:      "Degree",
			Institution: "Institution",
			Period:      "Start - End",
		}},
		Skills:    []string{"Skill 1", "Skill 2", "Skill 3"},
		Languages: []string{"English"},
	}
}

// SampleResume is returned when the model cannot be reached or its output
// cannot be parsed. It is a named example profile with a high-load notice.
func SampleResume(lang Lang) Resume {
	if lang == LangFrench {
		return Resume{
			Name:    "Alex Martin",
			Title:   "Développeur Full Stack",
			Summary: "Développeur full stack avec 5 ans d'expérience dans la création d'applications web performantes et la conduite de projets agiles.",
			Contact: Contact{
				Email:    "alex.martin@exemple.com",
				Phone:    "+33 6 12 34 56 78",
				Location: "Paris, France",
				LinkedIn: "linkedin.com/in/alexmartin",
			},
			Experience: []ExperienceRow{
				{
					Title:   "Développeur Full Stack",
					Company: "TechSolutions",
					Period:  "2021 - Présent",
					Bullets: []string{
						"Développé une plateforme e-commerce utilisée par plus de 50 000 clients",
						"Réduit le temps de chargement des pages de 40 % grâce à l'optimisation du rendu",
						"Encadré une équipe de 3 développeurs juniors",
					},
				},
				{
					Title:   "Développeur Web",
					Company: "Digital Agency",
					Period:  "2019 - 2021",
					Bullets: []string{
						"Conçu et livré 15 sites web pour des clients de divers secteurs",
						"Mis en place une intégration continue réduisant les erreurs de déploiement de 60 %",
						"Collaboré avec les designers pour améliorer l'expérience utilisateur",
					},
				},
			},
			Education: []EducationRow{{
				Degree:      "Master en Informatique",
				Institution: "Université Paris-Saclay",
				Period:      "2017 - 2019",
			}},
			Skills:         []string{"JavaScript", "React", "Node.js", "Go", "PostgreSQL", "Docker"},
			Certifications: []string{"AWS Certified Developer"},
			Languages:      []string{"Français", "Anglais"},
			Hobbies:        []string{"Course à pied", "Photographie"},
			Message:        "Notre service connaît actuellement une forte affluence. Voici un exemple de CV ; veuillez réessayer dans quelques instants.",
		}
	}
	return Resume{
		Name:    "Alex Martin",
		Title:   "Full Stack Developer",
		Summary: "Full stack developer with 5 years of experience building high-performance web applications and leading agile projects.",
		Contact: Contact{
			Email:    "alex.martin@example.com",
			Phone:    "+1 555 123 4567",
			Location: "San Francisco, CA",
			LinkedIn: "linkedin.com/in/alexmartin",
		},
		Experience: []ExperienceRow{
			{
				Title:   "Full Stack Developer",
				Company: "TechSolutions",
				Period:  "2021 - Present",
				Bullets: []string{
					"Built an e-commerce platform serving more than 50,000 customers",
					"Cut page load time by 40% by optimizing rendering",
					"Mentored a team of 3 junior developers",
				},
			},
			{
				Title:   "Web Developer",
				Company: "Digital Agency",
				Period:  "2019 - 2021",
				Bullets: []string{
					"Designed and delivered 15 websites for clients across industries",
					"Introduced continuous integration, reducing deployment errors by 60%",
					"Partnered with designers to improve user experience",
				},
			},
		},
		Education: []EducationRow{{
			Degree:      "M.S. in Computer Science",
			Institution: "Stanford University",
			Period:      "2017 - 2019",
		}},
		Skills:         []string{"JavaScript", "React", "Node.js", "Go", "PostgreSQL", "Docker"},
		Certifications: []string{"AWS Certified Developer"},
		Languages:      []string{"English", "French"},
		Hobbies:        []string{"Running", "Photography"},
		Message:        "Our service is currently experiencing high load. Here is a sample resume; please try again in a few moments.",
	}
}
