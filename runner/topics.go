package runner

import "math/rand"

// topicPool is the default rotation of subjects a run draws from when
// the caller does not name a topic.
var topicPool = []string{
	"The future of artificial intelligence in everyday life",
	"How remote work is reshaping the modern workplace",
	"The rise of sustainable technology and green innovation",
	"Digital transformation in healthcare: opportunities and challenges",
	"The evolution of cybersecurity in the digital age",
	"Blockchain technology beyond cryptocurrency",
	"The impact of social media on mental health and society",
	"Climate change solutions through technology",
	"The future of education with AI and virtual reality",
	"Data privacy in the age of big data",
	"The gig economy and the future of work",
	"Smart cities and urban technology integration",
	"The psychology of user experience design",
	"Automation and the changing job market",
	"The role of technology in combating social inequality",
	"Virtual reality and its applications beyond gaming",
	"The importance of digital literacy in modern society",
	"Sustainable living with smart home technology",
	"The ethics of artificial intelligence development",
	"How machine learning is revolutionizing industries",
}

// PickTopic returns a random topic from the default pool.
func PickTopic() string {
	return topicPool[rand.Intn(len(topicPool))]
}

// Topics returns a copy of the default topic pool.
func Topics() []string {
	out := make([]string, len(topicPool))
	copy(out, topicPool)
	return out
}
