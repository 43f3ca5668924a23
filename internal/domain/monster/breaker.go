package monster

import (
	"fmt"
	"strings"
)

const fillerText = "Hamburger fatback andouille, ball tip bacon t-bone turkey tenderloin. Ball tip shank pig, t-bone turducken prosciutto ground round rump bacon pork chop short loin turkey. Pancetta ball tip salami, hamburger t-bone capicola turkey ham hock pork belly tri-tip. Biltong bresaola tail, shoulder sausage turkey cow pork chop fatback. Turkey pork pig bacon short loin meatloaf, chicken ham hock flank andouille tenderloin shank rump filet mignon. Shoulder frankfurter shankle pancetta. Jowl andouille short ribs swine venison, pork loin pork chop meatball jerky filet mignon shoulder tenderloin chicken pork."

// BreakerText returns HTML built to overflow a narrow sidebar: two large
// images, a long paragraph, an unbroken pipe run and a line of smilies.
// The result passes through TextFilters.
func (m *Widget) BreakerText() string {
	html := []string{
		"<strong>" + m.t("Large image: Hand Coded") + "</strong>",
		fmt.Sprintf(`<img src="%s">`, m.imageURL),

		"<strong>" + m.t("Large image: linked in a caption") + "</strong>",
		fmt.Sprintf(`<div class="wp-caption alignnone"><a href="#"><img src="%s" class="size-large" height="%d" width="%d"></a><p class="wp-caption-text">%s</p></div>`,
			m.imageURL, breakerImageHeight, breakerImageWidth, m.t("This image is 900 by 598 pixels.")),

		"<strong>" + m.t("Meat!") + "</strong>",
		m.t(fillerText),

		"<strong>" + m.t("Pipe Test") + "</strong>",
		strings.Repeat("|", pipeRunLength),

		"<strong>" + m.t("Smile!") + "</strong>",
		m.smilies(";)") + " " + m.smilies(":)") + " " + m.smilies(":-D"),
	}

	return m.textFilters.Apply(strings.Join(html, "\n"))
}
