package chatbot

import "strings"

type topic struct {
	words []string
	reply string
}

// Checked in order; the first topic with a matching word answers.
var topics = []topic{
	{
		words: []string{"headache", "head ache", "head pain"},
		reply: `<h4>About Headaches</h4>
<p>Headaches are common and can be caused by various factors including stress, dehydration, or lack of sleep.</p>
<h4>Tips for Managing Headaches</h4>
<ul>
<li>Drink plenty of water to stay hydrated</li>
<li>Take short breaks if you're working at a computer for long periods</li>
<li>Try to maintain regular sleep patterns</li>
<li>Consider over-the-counter pain relievers if appropriate</li>
<li>Practice stress-reduction techniques like deep breathing</li>
</ul>
<p>If your headaches are severe, persistent, or accompanied by other symptoms, please consult a healthcare provider.</p>`,
	},
	{
		words: []string{"cold", "flu", "cough", "fever"},
		reply: `<h4>Cold & Flu Management</h4>
<p>Common colds and flu are viral infections affecting the respiratory system.</p>
<h4>Recommendations</h4>
<ul>
<li><b>Rest</b>: Give your body time to fight the infection</li>
<li><b>Hydration</b>: Drink plenty of fluids to prevent dehydration</li>
<li><b>Over-the-counter medications</b>: These can help relieve symptoms</li>
<li>Use a humidifier to ease congestion</li>
<li>Gargle with salt water to soothe a sore throat</li>
</ul>
<p>If you have a high fever, difficulty breathing, or symptoms that worsen or don't improve, please seek medical attention.</p>`,
	},
	{
		words: []string{"diet", "nutrition", "eat", "food"},
		reply: `<h4>Healthy Eating Guidelines</h4>
<p>A balanced diet is essential for overall health and wellbeing.</p>
<h4>Key Principles</h4>
<ul>
<li>Include a variety of fruits and vegetables daily</li>
<li>Choose whole grains over refined grains</li>
<li>Include lean protein sources like fish, poultry, beans, and nuts</li>
<li>Limit added sugars, sodium, and saturated fats</li>
<li>Stay hydrated by drinking plenty of water throughout the day</li>
</ul>
<p>Individual nutritional needs can vary based on age, gender, activity level, and health conditions. Consider consulting with a registered dietitian for personalized advice.</p>`,
	},
	{
		words: []string{"sleep", "insomnia", "tired"},
		reply: `<h4>Sleep Hygiene Tips</h4>
<p>Quality sleep is essential for physical and mental health.</p>
<h4>Recommendations for Better Sleep</h4>
<ul>
<li>Maintain a consistent sleep schedule, even on weekends</li>
<li>Create a relaxing bedtime routine</li>
<li>Make your bedroom comfortable, dark, and quiet</li>
<li>Limit screen time before bed</li>
<li>Avoid caffeine and large meals close to bedtime</li>
</ul>
<p>If you're experiencing persistent sleep problems, consider speaking with a healthcare provider.</p>`,
	},
	{
		words: []string{"stress", "anxiety", "worried", "nervous"},
		reply: `<h4>Managing Stress and Anxiety</h4>
<p>Stress and anxiety are normal responses to challenging situations, but it's important to manage them effectively.</p>
<h4>Coping Strategies</h4>
<ul>
<li>Practice deep breathing or meditation</li>
<li>Engage in regular physical activity</li>
<li>Maintain social connections</li>
<li>Get adequate sleep</li>
<li>Consider journaling to process thoughts and feelings</li>
</ul>
<p>If stress or anxiety is significantly impacting your daily life, please consider reaching out to a mental health professional.</p>`,
	},
}

const defaultReply = `<p>I'm here to provide general health information and support. How can I assist you with your health questions today?</p>
<h4>I can help with topics like:</h4>
<ul>
<li>Managing common symptoms</li>
<li>Healthy lifestyle tips</li>
<li>General wellness information</li>
<li>Stress management techniques</li>
<li>Nutrition and exercise basics</li>
</ul>
<p>Please note that I'm not a replacement for professional medical advice. For specific health concerns, please consult with a healthcare provider.</p>`

// topicReply matches on substrings, so "great" answers with the diet topic.
func topicReply(message string) string {
	lower := strings.ToLower(message)
	for _, t := range topics {
		for _, w := range t.words {
			if strings.Contains(lower, w) {
				return t.reply
			}
		}
	}
	return defaultReply
}
